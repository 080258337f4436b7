package cache

import (
	"context"
	"time"
)

// NullCache disables artifact caching: every lookup misses and writes are
// dropped. One-shot CLI renders use it since each run starts cold anyway.
type NullCache struct{}

// NewNullCache returns a cache that never holds artifacts.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
