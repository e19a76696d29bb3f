// Package cache keeps objects that are slow to build, such as opening
// books read from disk, so they are only loaded once per process.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type cache struct {
	sync.Mutex
	objects map[string]interface{}
}

type loadFunc func(key string) (interface{}, error)

// GlobalObjectCache is shared by every caller of Load.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) load(key string, loadFunc loadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(key string, loadFunc loadFunc) (interface{}, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	if err := c.load(key, loadFunc); err != nil {
		return nil, err
	}
	return c.objects[key], nil
}

// forget drops key so the next Load builds it again.
func (c *cache) forget(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.objects, key)
}

func CreateGlobalObjectCache() {
	createOnce.Do(func() {
		GlobalObjectCache = &cache{objects: make(map[string]interface{})}
	})
}

// Load returns the object stored under name, calling loadFunc to build it
// the first time. Failed loads are not stored.
func Load(name string, loadFunc loadFunc) (interface{}, error) {
	CreateGlobalObjectCache()
	return GlobalObjectCache.get(name, loadFunc)
}

// Forget removes name from the global cache.
func Forget(name string) {
	CreateGlobalObjectCache()
	GlobalObjectCache.forget(name)
}
