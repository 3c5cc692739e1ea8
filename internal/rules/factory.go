package rules

import "sync/atomic"

// SourceFactory hands out one source per game session. key identifies the
// session and becomes the client seed of a provably-fair source.
type SourceFactory func(key string) Source

// NewSourceFactory picks the source kind from configuration. A server seed
// wins over a numeric seed; with neither every session is seeded from the clock.
func NewSourceFactory(seed uint64, serverSeed string) SourceFactory {
	var nonce atomic.Uint64

	switch {
	case serverSeed != "":
		return func(key string) Source {
			return NewSeededSource(serverSeed, key, nonce.Add(1))
		}
	case seed != 0:
		return func(string) Source {
			return NewSource(seed + nonce.Add(1))
		}
	default:
		return func(string) Source {
			return NewRandomSource()
		}
	}
}
