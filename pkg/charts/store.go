package charts

import (
	"strconv"
	"time"

	"github.com/gosimple/slug"
	gocache "github.com/patrickmn/go-cache"
)

// Store parks rendered figures between the result page and the image
// requests it triggers. Entries expire, nothing else is ever cached.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, ttl*2),
	}
}

func (s *Store) Add(key string, b []byte) {
	s.cache.SetDefault(key, b)
}

func (s *Store) Get(key string) ([]byte, bool) {

	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Key is unique per figure per render cycle, and safe in a URL path.
func Key(title string, kind string) string {
	return slug.Make(title+" "+kind) + "-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}
