package conflicts

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mstcc/pkg/problem"
)

func counts(t *Tracker) []uint64 {
	out := make([]uint64, len(t.count))
	for e := range out {
		out[e] = t.Of(e)
	}
	return out
}

func TestAddSmall(t *testing.T) {
	tr := New(problem.Small())

	steps := []struct {
		add    int
		total  uint64
		counts []uint64
	}{
		{0, 0, []uint64{0, 1, 0, 1, 0, 0}},
		{3, 1, []uint64{1, 1, 0, 1, 0, 0}},
		{5, 1, []uint64{1, 2, 0, 1, 0, 0}},
		{1, 3, []uint64{2, 2, 1, 1, 0, 1}},
	}
	for _, s := range steps {
		tr.Add(s.add)
		assert.Equal(t, s.total, tr.Total(), "after adding e%d", s.add)
		assert.Equal(t, s.counts, counts(tr), "after adding e%d", s.add)
		require.NoError(t, tr.Check())
	}
	assert.ElementsMatch(t, []int{0, 3, 5, 1}, tr.Edges())
}

func TestRemoveSmall(t *testing.T) {
	tr := NewWithEdges(problem.Small(), []int{0, 3, 5, 1})

	tr.Remove(3)
	assert.Equal(t, uint64(2), tr.Total())
	assert.Equal(t, []uint64{1, 2, 1, 1, 0, 1}, counts(tr))
	assert.False(t, tr.Contains(3))
	require.NoError(t, tr.Check())

	tr.Remove(1)
	assert.Equal(t, uint64(0), tr.Total())
	// e1 still conflicts with tracked e0 and e5.
	assert.Equal(t, []uint64{0, 2, 0, 1, 0, 0}, counts(tr))
	require.NoError(t, tr.Check())

	tr.Remove(0)
	tr.Remove(5)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, []uint64{0, 0, 0, 0, 0, 0}, counts(tr))
}

func TestReplace(t *testing.T) {
	tr := NewWithEdges(problem.Small(), []int{0, 3, 5})
	require.Equal(t, uint64(1), tr.Total())

	tr.Replace(3, 2)
	assert.True(t, tr.Contains(2))
	assert.False(t, tr.Contains(3))
	assert.Equal(t, uint64(0), tr.Total())
	require.NoError(t, tr.Check())
}

func TestReplaceIsNotAtomic(t *testing.T) {
	tr := NewWithEdges(problem.Small(), []int{0, 3, 5})
	assert.Panics(t, func() { tr.Replace(3, 5) })
	assert.False(t, tr.Contains(3), "removal already happened")
	assert.True(t, tr.Contains(5))
	require.NoError(t, tr.Check())
}

func TestMisusePanics(t *testing.T) {
	tr := NewWithEdges(problem.Small(), []int{0})
	assert.Panics(t, func() { tr.Add(0) })
	assert.Panics(t, func() { tr.Remove(1) })
}

func TestReset(t *testing.T) {
	tr := NewWithEdges(problem.Small(), []int{0, 3, 5, 1})
	tr.Reset()
	assert.Equal(t, uint64(0), tr.Total())
	assert.Equal(t, 0, tr.Len())
	for e := 0; e < 6; e++ {
		assert.False(t, tr.Contains(e))
		assert.Zero(t, tr.Of(e))
	}
	tr.Add(1)
	tr.Add(0)
	assert.Equal(t, uint64(1), tr.Total())
}

func TestCheckDetectsCorruption(t *testing.T) {
	tr := NewWithEdges(problem.Small(), []int{0, 3})
	tr.total = 7
	assert.Error(t, tr.Check())

	tr = NewWithEdges(problem.Small(), []int{0, 3})
	tr.count[4] = 9
	assert.Error(t, tr.Check())
}

func TestRandomInterleaving(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	p, err := problem.Generate(problem.GenerateOptions{Vertices: 15, Edges: 50, Conflicts: 200, MaxWeight: 10}, rng)
	require.NoError(t, err)

	tr := New(p)
	in := map[int]bool{}
	for step := 0; step < 2000; step++ {
		e := rng.IntN(p.NumEdges())
		if in[e] {
			tr.Remove(e)
			delete(in, e)
		} else {
			tr.Add(e)
			in[e] = true
		}

		set := make([]int, 0, len(in))
		for f := range in {
			set = append(set, f)
		}
		require.Equal(t, p.Conflicts(set), tr.Total(), "step %d", step)
		if step%50 == 0 {
			require.NoError(t, tr.Check())
		}
	}
	require.NoError(t, tr.Check())
}
