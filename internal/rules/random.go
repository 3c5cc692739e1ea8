// Package rules holds the primitives the game engines share: an injectable
// random source, shuffling, turn alternation and grid coordinates.
package rules

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"time"
)

// Source is the only way an engine draws randomness. Tests swap it for a
// scripted sequence to get exact layouts.
type Source interface {
	// Intn returns a value in [0, n). It returns 0 when n <= 0.
	Intn(n int) int
}

type pcgSource struct {
	rnd *rand.Rand
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed uint64) Source {
	return &pcgSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint: gosec // game shuffles
}

// NewRandomSource returns a source seeded from the clock.
func NewRandomSource() Source {
	return NewSource(uint64(time.Now().UnixNano())) //nolint: gosec // it's ok
}

func (that *pcgSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	return that.rnd.IntN(n)
}

// seededSource streams bytes from HMAC-SHA256(serverSeed, "clientSeed:nonce:round")
// so a deal can be replayed from its published seeds.
type seededSource struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	round      uint64
	pos        int
	buffer     [sha256.Size]byte
}

// NewSeededSource returns a reproducible source driven by a server/client seed pair.
func NewSeededSource(serverSeed, clientSeed string, nonce uint64) Source {
	src := &seededSource{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
	}
	src.generateRound()

	return src
}

func (that *seededSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	idx := int(that.nextFloat() * float64(n))
	if idx >= n {
		return n - 1
	}

	return idx
}

func (that *seededSource) next() byte {
	if that.pos >= len(that.buffer) {
		that.round++
		that.pos = 0
		that.generateRound()
	}

	b := that.buffer[that.pos]
	that.pos++

	return b
}

// nextFloat turns 4 bytes into a float in [0, 1).
func (that *seededSource) nextFloat() float64 {
	result := 0.0
	divider := 1.0

	for range 4 {
		divider *= 256
		result += float64(that.next()) / divider
	}

	return result
}

func (that *seededSource) generateRound() {
	h := hmac.New(sha256.New, []byte(that.serverSeed))
	h.Write([]byte(fmt.Sprintf("%s:%d:%d", that.clientSeed, that.nonce, that.round)))
	copy(that.buffer[:], h.Sum(nil))
}

type fixedSource struct {
	values []int
	pos    int
}

// Fixed returns a source that replays values in order, wrapping around when
// exhausted. Each value is reduced modulo n.
func Fixed(values ...int) Source {
	return &fixedSource{values: values}
}

func (that *fixedSource) Intn(n int) int {
	if n <= 0 || len(that.values) == 0 {
		return 0
	}

	v := that.values[that.pos%len(that.values)]
	that.pos++

	v %= n
	if v < 0 {
		v += n
	}

	return v
}

// Shuffle permutes items in place with Fisher-Yates.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Pick returns a uniformly chosen element, or false when items is empty.
func Pick[T any](src Source, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}

	return items[src.Intn(len(items))], true
}
