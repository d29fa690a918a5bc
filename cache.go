package monty

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ProgramCache memoizes prepared Programs by an embedder-chosen key (e.g. a
// hash of the source text), so a server re-running the same handler body
// across many requests doesn't re-prepare it each time. Prepare itself
// lives outside this package (spec: parsing/compiling is not this
// package's concern); ProgramCache only caches the already-prepared result.
type ProgramCache struct {
	cache *lru.Cache[string, *Program]
}

// NewProgramCache builds a ProgramCache holding at most size prepared
// programs, evicting least-recently-used once full.
func NewProgramCache(size int) (*ProgramCache, error) {
	c, err := lru.New[string, *Program](size)
	if err != nil {
		return nil, newInternalError("NewProgramCache: %v", err)
	}
	return &ProgramCache{cache: c}, nil
}

// Get returns the cached Program for key, if present.
func (pc *ProgramCache) Get(key string) (*Program, bool) {
	return pc.cache.Get(key)
}

// Put stores prog under key, evicting the least-recently-used entry if the
// cache is at capacity.
func (pc *ProgramCache) Put(key string, prog *Program) {
	pc.cache.Add(key, prog)
}

// Len reports the number of programs currently cached.
func (pc *ProgramCache) Len() int {
	return pc.cache.Len()
}
