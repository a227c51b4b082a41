package cache

// ScopedKeyer wraps a Keyer with a prefix. A shared Redis server uses it to
// keep solver entries in their own namespace, which is also what
// [RedisCache.Clear] scans for.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "mstcc:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// Prefix returns the namespace prepended to every key.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

// SolutionKey generates a prefixed solution key.
func (k *ScopedKeyer) SolutionKey(instanceHash string, opts SolutionKeyOpts) string {
	return k.prefix + k.inner.SolutionKey(instanceHash, opts)
}
