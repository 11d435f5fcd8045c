// Package iocache is for caching BGG responses between runs.
package iocache

import (
	"sync"

	"github.com/EmilStenstrom/gamecache/internal/contract"
)

// CacheStoreManager manages the response CacheStore instance.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	response     contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetResponseStore returns the response CacheStore.
func (mgr *CacheStoreManager) GetResponseStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.response
}
