// Package collections holds small generic helpers for batches of objects.
package collections

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
)

// Activatable is anything that can be switched on and off.
type Activatable interface {
	SetActive(active bool)
}

// EnableAll activates every item.
func EnableAll[T Activatable](items []T) {
	setAll(items, true)
}

// DisableAll deactivates every item.
func DisableAll[T Activatable](items []T) {
	setAll(items, false)
}

func setAll[T Activatable](items []T, active bool) {
	for _, it := range items {
		it.SetActive(active)
	}
}

// Shuffle permutes s in place with a uniform Fisher-Yates shuffle.
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Pick returns a uniformly chosen element. ok is false for an empty slice.
func Pick[T any](rng *rand.Rand, s []T) (v T, ok bool) {
	if len(s) == 0 {
		return v, false
	}
	return s[rng.IntN(len(s))], true
}

// Sample returns up to k distinct elements in random order. s is not modified.
func Sample[T any](rng *rand.Rand, s []T, k int) []T {
	out := make([]T, len(s))
	copy(out, s)
	Shuffle(rng, out)
	if k < len(out) {
		out = out[:max(k, 0)]
	}
	return out
}

// ShuffledKeys returns m's keys in random order. Go maps have no order of
// their own, so the order lives in the returned slice.
func ShuffledKeys[K cmp.Ordered, V any](rng *rand.Rand, m map[K]V) []K {
	keys := lo.Keys(m)
	// Sort first so the result depends only on rng.
	slices.Sort(keys)
	Shuffle(rng, keys)
	return keys
}

// GetOr returns m[k], or def when k is absent.
func GetOr[K comparable, V any](m map[K]V, k K, def V) V {
	if v, ok := m[k]; ok {
		return v
	}
	return def
}
