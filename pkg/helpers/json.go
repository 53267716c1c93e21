package helpers

import (
	"encoding/json"
	"errors"
	"reflect"

	"github.com/reviewdb/reviewdb/pkg/log"
)

var ErrUnMarshalNonPointer = errors.New("trying to unmarshal a non-pointer")

// Wraps json.Unmarshal and adds logging
func Unmarshal(data []byte, v interface{}) (err error) {

	if reflect.ValueOf(v).Kind() != reflect.Ptr {
		return ErrUnMarshalNonPointer
	}

	if len(data) == 0 {
		return nil
	}

	err = json.Unmarshal(data, v)

	switch err.(type) {
	case nil:
	case *json.SyntaxError, *json.InvalidUnmarshalError, *json.UnmarshalTypeError:
		if len(data) > 1000 {
			data = data[0:1000]
		}
		log.InfoS(err.Error() + ": " + string(data) + "...")
	default:
		log.ErrS(err)
	}

	return err
}
