package helpers

import (
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/reviewdb/reviewdb/pkg/log"
)

func GetWithTimeout(link string, timeout time.Duration) (b []byte, code int, err error) {
	return requestWithTimeout("GET", link, timeout)
}

func requestWithTimeout(method string, link string, timeout time.Duration) (body []byte, code int, err error) {

	if link == "" {
		return nil, 0, err
	}

	u, err := url.Parse(link)
	if err != nil {
		return nil, 0, err
	}

	if !u.IsAbs() {
		return nil, 0, err
	}

	if timeout == 0 {
		timeout = time.Second * 10
	}

	req, err := http.NewRequest(method, u.String(), nil)
	if err != nil {
		return nil, 0, err
	}

	clientWithTimeout := &http.Client{
		Timeout: timeout,
	}

	resp, err := clientWithTimeout.Do(req)
	if err != nil {
		return nil, 0, err
	}

	defer Close(resp.Body)

	body, err = ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, err
}

func Close(c io.Closer) {
	err := c.Close()
	if err != nil {
		log.ErrS(err)
	}
}
