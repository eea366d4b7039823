package core

import (
	"github.com/chromy/hilbertviz/internal/cache"
)

func InitCache(c cache.Cache) {
	mu.Lock()
	defer mu.Unlock()
	theCache = c
}

func GetCache() cache.Cache {
	mu.RLock()
	defer mu.RUnlock()
	return theCache
}
