package cache

import "errors"

var (
	// ErrNetwork marks failures to reach a remote backend.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned by [GetJSON] when the key is absent.
	ErrCacheMiss = errors.New("cache miss")
)
