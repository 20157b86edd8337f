package db

import (
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Cache keys are tracked per family so all entries of one kind can be
// dropped together (rule sets when rules change, budget summaries when
// expenses change).
var (
	Cache         *ristretto.Cache
	RuleCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	SummaryCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() error {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	return err
}

// Rule Set Cache Functions
func SetRuleCache(cacheKey string, value interface{}) {
	RuleCacheKeys.Lock()
	RuleCacheKeys.m[cacheKey] = struct{}{}
	RuleCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func DelRuleCache(cacheKey string) {
	RuleCacheKeys.Lock()
	delete(RuleCacheKeys.m, cacheKey)
	RuleCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllRuleCaches() {
	RuleCacheKeys.Lock()
	for key := range RuleCacheKeys.m {
		Cache.Del(key)
	}
	RuleCacheKeys.m = make(map[string]struct{})
	RuleCacheKeys.Unlock()
}

// Budget Summary Cache Functions
func SetSummaryCache(cacheKey string, value interface{}) {
	SummaryCacheKeys.Lock()
	SummaryCacheKeys.m[cacheKey] = struct{}{}
	SummaryCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func DelSummaryCache(cacheKey string) {
	SummaryCacheKeys.Lock()
	delete(SummaryCacheKeys.m, cacheKey)
	SummaryCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllSummaryCaches() {
	SummaryCacheKeys.Lock()
	for key := range SummaryCacheKeys.m {
		Cache.Del(key)
	}
	SummaryCacheKeys.m = make(map[string]struct{})
	SummaryCacheKeys.Unlock()
}
