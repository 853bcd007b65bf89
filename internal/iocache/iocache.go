package iocache

import (
	"sync"

	"github.com/huangsam/acqscore/internal/contract"
)

// CacheStoreManager manages the enrichment cache and the history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	enrichment   contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetEnrichmentStore returns the enrichment CacheStore, or nil when caching is not initialized.
func (mgr *CacheStoreManager) GetEnrichmentStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.enrichment
}

// GetAnalysisStore returns the history AnalysisStore, or nil when history is not initialized.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
