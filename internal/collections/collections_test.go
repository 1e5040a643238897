package collections

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lamp struct{ on bool }

func (l *lamp) SetActive(active bool) { l.on = active }

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestEnableDisableAll(t *testing.T) {
	t.Parallel()
	lamps := []*lamp{{}, {on: true}, {}}

	EnableAll(lamps)
	for _, l := range lamps {
		assert.True(t, l.on)
	}
	DisableAll(lamps)
	for _, l := range lamps {
		assert.False(t, l.on)
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	t.Parallel()
	s := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(newRand(1), s)

	sorted := slices.Clone(s)
	slices.Sort(sorted)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, sorted)
}

func TestShuffle_Deterministic(t *testing.T) {
	t.Parallel()
	a := []string{"a", "b", "c", "d", "e"}
	b := slices.Clone(a)
	Shuffle(newRand(42), a)
	Shuffle(newRand(42), b)
	assert.Equal(t, a, b)
}

func TestShuffle_Uniform(t *testing.T) {
	t.Parallel()
	rng := newRand(7)
	counts := make(map[[3]int]int)
	const rounds = 60000
	for i := 0; i < rounds; i++ {
		s := []int{0, 1, 2}
		Shuffle(rng, s)
		counts[[3]int(s)]++
	}

	require.Len(t, counts, 6)
	for perm, c := range counts {
		assert.InDelta(t, rounds/6, c, rounds/6*0.1, "permutation %v", perm)
	}
}

func TestShuffle_ShortSlices(t *testing.T) {
	t.Parallel()
	var empty []int
	Shuffle(newRand(1), empty)
	one := []int{9}
	Shuffle(newRand(1), one)
	assert.Equal(t, []int{9}, one)
}

func TestPick(t *testing.T) {
	t.Parallel()
	_, ok := Pick(newRand(1), []int{})
	assert.False(t, ok)

	v, ok := Pick(newRand(1), []string{"x", "y", "z"})
	require.True(t, ok)
	assert.Contains(t, []string{"x", "y", "z"}, v)
}

func TestSample(t *testing.T) {
	t.Parallel()
	src := []int{1, 2, 3, 4, 5}

	got := Sample(newRand(3), src, 2)
	assert.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])
	assert.Equal(t, []int{1, 2, 3, 4, 5}, src, "source untouched")

	assert.Len(t, Sample(newRand(3), src, 10), 5)
	assert.Empty(t, Sample(newRand(3), src, -1))
}

func TestShuffledKeys(t *testing.T) {
	t.Parallel()
	m := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}

	keys := ShuffledKeys(newRand(5), m)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, keys)
	assert.Equal(t, keys, ShuffledKeys(newRand(5), m))
}

func TestGetOr(t *testing.T) {
	t.Parallel()
	m := map[string]int{"a": 1}
	assert.Equal(t, 1, GetOr(m, "a", 7))
	assert.Equal(t, 7, GetOr(m, "z", 7))
}
