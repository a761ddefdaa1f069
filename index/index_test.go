package index_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reco/index"
	"github.com/viant/reco/index/bruteforce"
	"github.com/viant/reco/index/cover"
	"github.com/viant/reco/index/kdtree"
)

func randomPoints(seed int64, n, dim int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	points := make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, dim)
		for d := range points[i] {
			points[i][d] = rng.Float64()
		}
	}
	return points
}

func implementations() map[string]func() index.Index {
	return map[string]func() index.Index{
		"bruteforce":       func() index.Index { return bruteforce.New() },
		"kdtree":           func() index.Index { return kdtree.New() },
		"kdtree-leaf1":     func() index.Index { return kdtree.New(kdtree.WithLeafSize(1)) },
		"cover":            func() index.Index { return cover.New() },
		"cover-best-first": func() index.Index { return cover.New(cover.WithSearch(cover.SearchBestFirst)) },
		"cover-wide-base":  func() index.Index { return cover.New(cover.WithBase(2)) },
	}
}

func TestIndexes_MatchBruteForce(t *testing.T) {
	var testCases = []struct {
		description string
		points      [][]float64
		k           int
	}{
		{description: "uniform 5d", points: randomPoints(1, 1000, 5), k: 10},
		{description: "uniform 2d, k=1", points: randomPoints(2, 300, 2), k: 1},
		{description: "k larger than N", points: randomPoints(3, 20, 3), k: 50},
		{description: "clustered grid with ties", points: grid(12), k: 9},
	}
	for _, testCase := range testCases {
		reference := bruteforce.New()
		require.NoError(t, reference.Build(testCase.points), testCase.description)
		queries := append(randomPoints(99, 25, len(testCase.points[0])), testCase.points[:5]...)
		for name, factory := range implementations() {
			idx := factory()
			require.NoError(t, idx.Build(testCase.points), name)
			assert.Equal(t, len(testCase.points), idx.Len(), name)
			for _, q := range queries {
				want, err := reference.Query(q, testCase.k)
				require.NoError(t, err)
				got, err := idx.Query(q, testCase.k)
				require.NoError(t, err, name)
				require.Equal(t, want, got, "%s: %s", testCase.description, name)
			}
		}
	}
}

func grid(n int) [][]float64 {
	var points [][]float64
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			points = append(points, []float64{float64(x) / float64(n), float64(y) / float64(n)})
		}
	}
	// duplicates of the first cell
	points = append(points, []float64{0, 0}, []float64{0, 0})
	return points
}

func TestIndexes_OrderingAndDeterminism(t *testing.T) {
	points := randomPoints(5, 400, 4)
	q := []float64{0.5, 0.5, 0.5, 0.5}
	for name, factory := range implementations() {
		idx := factory()
		require.NoError(t, idx.Build(points), name)
		first, err := idx.Query(q, 15)
		require.NoError(t, err)
		require.Len(t, first, 15)
		for i := 1; i < len(first); i++ {
			assert.LessOrEqual(t, first[i-1].Distance, first[i].Distance, name)
		}
		second, err := idx.Query(q, 15)
		require.NoError(t, err)
		assert.Equal(t, first, second, name)
	}
}

func TestIndexes_Errors(t *testing.T) {
	for name, factory := range implementations() {
		idx := factory()
		_, err := idx.Query([]float64{1}, 1)
		assert.ErrorIs(t, err, index.ErrNotBuilt, name)

		assert.Error(t, idx.Build(nil), name)
		assert.ErrorIs(t, idx.Build([][]float64{{1, 2}, {3}}), index.ErrDimension, name)

		require.NoError(t, idx.Build([][]float64{{1, 2}, {3, 4}}), name)
		_, err = idx.Query([]float64{1}, 1)
		assert.ErrorIs(t, err, index.ErrDimension, name)
		_, err = idx.Query([]float64{1, 2}, 0)
		assert.Error(t, err, name)
	}
}

func TestIndexes_ConcurrentQueries(t *testing.T) {
	points := randomPoints(8, 500, 5)
	queries := randomPoints(9, 64, 5)
	for name, factory := range implementations() {
		idx := factory()
		require.NoError(t, idx.Build(points), name)
		want := make([][]index.Neighbor, len(queries))
		for i, q := range queries {
			res, err := idx.Query(q, 5)
			require.NoError(t, err)
			want[i] = res
		}
		var wg sync.WaitGroup
		errs := make(chan string, len(queries))
		for i, q := range queries {
			wg.Add(1)
			go func(i int, q []float64) {
				defer wg.Done()
				got, err := idx.Query(q, 5)
				if err != nil || !assert.ObjectsAreEqual(want[i], got) {
					errs <- name
				}
			}(i, q)
		}
		wg.Wait()
		close(errs)
		for failed := range errs {
			t.Fatalf("%s: concurrent query diverged", failed)
		}
	}
}

func TestKDTree_Depth(t *testing.T) {
	idx := kdtree.New(kdtree.WithLeafSize(4))
	require.NoError(t, idx.Build(randomPoints(4, 1024, 3)))
	// balanced median splits: 1024/4 leaves -> 9 levels
	assert.Equal(t, 9, idx.Depth())
}

func TestKDTree_ExactOnEveryStoredPoint(t *testing.T) {
	points := randomPoints(11, 1000, 5)
	reference := bruteforce.New()
	require.NoError(t, reference.Build(points))
	for _, leafSize := range []int{1, 2, kdtree.DefaultLeafSize} {
		idx := kdtree.New(kdtree.WithLeafSize(leafSize))
		require.NoError(t, idx.Build(points))
		for row, p := range points {
			got, err := idx.Query(p, 6)
			require.NoError(t, err)
			require.Equal(t, row, got[0].Row, "leaf %d: self hit", leafSize)
			require.Zero(t, got[0].Distance)
			want, err := reference.Query(p, 6)
			require.NoError(t, err)
			require.Equal(t, want, got, "leaf %d: row %d", leafSize, row)
		}
	}
}
