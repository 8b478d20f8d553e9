package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/dictionary"
)

// The cache holds word lists that have already been loaded, keyed by path,
// so that starting another game does not read and decode the list again.

type cache struct {
	sync.Mutex
	objects map[string]*dictionary.Dictionary
}

type loadFunc func(path string) (*dictionary.Dictionary, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

func (c *cache) get(key string, loadFunc loadFunc) (*dictionary.Dictionary, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := loadFunc(key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]*dictionary.Dictionary)}
}

// Load returns the dictionary for path, calling loadFunc only the first time.
// Failed loads are not cached.
func Load(path string, loadFunc loadFunc) (*dictionary.Dictionary, error) {
	if GlobalObjectCache == nil {
		CreateGlobalObjectCache()
	}
	return GlobalObjectCache.get(path, loadFunc)
}

// Dictionary loads a word list from disk through the cache.
func Dictionary(path string) (*dictionary.Dictionary, error) {
	return Load(path, dictionary.Load)
}
