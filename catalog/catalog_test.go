package catalog

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reco/embedding"
	"github.com/viant/reco/index/bruteforce"
)

func openMemory(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestArtistKey(t *testing.T) {
	var testCases = []struct {
		name   string
		expect string
	}{
		{name: "Pink Floyd", expect: "pinkfloyd"},
		{name: "  The  Beatles ", expect: "thebeatles"},
		{name: "ABBA", expect: "abba"},
		{name: "", expect: ""},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ArtistKey(testCase.name), testCase.name)
	}
}

func TestSubmitFavorites(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	got, err := c.SubmitFavorites(ctx, [3]string{"Radiohead", "Muse", "Blur"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = c.SubmitFavorites(ctx, [3]string{"Radiohead", "Coldplay", "Muse"})
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{ID: "blur", Display: "Blur", Weight: 2}}, got)

	// nothing links to these three, so the most popular artists come back
	got, err = c.SubmitFavorites(ctx, [3]string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{
		{ID: "muse", Display: "Muse", Weight: 4},
		{ID: "radiohead", Display: "Radiohead", Weight: 4},
		{ID: "blur", Display: "Blur", Weight: 2},
		{ID: "coldplay", Display: "Coldplay", Weight: 2},
	}, got)

	artists, err := c.ListArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 7)
	assert.Equal(t, Artist{ID: "a", Display: "A"}, artists[0])
	assert.Equal(t, Artist{ID: "radiohead", Display: "Radiohead"}, artists[6])
}

func TestSubmitFavorites_SuggestionLimitAndDisplay(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)
	for _, names := range [][3]string{
		{"Seed", "One", "Two"},
		{"Seed", "Three", "Four"},
		{"Seed", "Five", "Six"},
		{"Seed", "One", "Three"},
	} {
		_, err := c.SubmitFavorites(ctx, names)
		require.NoError(t, err)
	}
	// a later spelling does not replace the stored display name
	got, err := c.SubmitFavorites(ctx, [3]string{"S E E D", "Other", "Else"})
	require.NoError(t, err)
	require.Len(t, got, SuggestionLimit)
	assert.Equal(t, "one", got[0].ID)
	assert.Equal(t, 2, got[0].Weight)
	assert.Equal(t, "three", got[1].ID)
	for _, s := range got {
		assert.NotContains(t, []string{"seed", "other", "else"}, s.ID)
	}
	names, err := c.DisplayNames(ctx, []string{"seed", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"seed": "Seed"}, names)
}

func TestSubmitFavorites_Invalid(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)
	var testCases = []struct {
		description string
		names       [3]string
	}{
		{description: "empty name", names: [3]string{"Muse", "", "Blur"}},
		{description: "blank name", names: [3]string{"Muse", "   ", "Blur"}},
		{description: "same artist twice", names: [3]string{"Pink Floyd", "pinkfloyd", "Blur"}},
	}
	for _, testCase := range testCases {
		_, err := c.SubmitFavorites(ctx, testCase.names)
		assert.ErrorIs(t, err, ErrInvalidFavorites, testCase.description)
	}
	artists, err := c.ListArtists(ctx)
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestEmbeddings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	_, err := c.LoadEmbeddings(ctx)
	assert.ErrorIs(t, err, embedding.ErrDataLoad)

	ids := []string{"b", "a", "c"}
	rows := [][]float64{{1, 2}, {3, 4.5}, {-1, 0}}
	require.NoError(t, c.SaveEmbeddings(ctx, ids, rows))

	store, err := c.LoadEmbeddings(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids, store.IDs)
	assert.Equal(t, rows, store.Matrix.RowSlices())

	names, err := c.DisplayNames(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "a", "b": "b", "c": "c"}, names)

	require.NoError(t, c.SaveEmbeddings(ctx, []string{"z"}, [][]float64{{7, 8}}))
	store, err = c.LoadEmbeddings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, store.IDs)

	err = c.SaveEmbeddings(ctx, []string{"x", "y"}, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, embedding.ErrDataLoad)
}

func TestNearestSQL_MatchesBruteForce(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	rng := rand.New(rand.NewSource(11))
	ids := make([]string, 60)
	rows := make([][]float64, len(ids))
	for i := range rows {
		ids[i] = string(rune('A'+i%26)) + string(rune('a'+i/26))
		rows[i] = []float64{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
	}
	require.NoError(t, c.SaveEmbeddings(ctx, ids, rows))

	brute := bruteforce.New()
	require.NoError(t, brute.Build(rows))
	for q := 0; q < 5; q++ {
		query := []float64{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
		want, err := brute.Query(query, 7)
		require.NoError(t, err)
		got, err := c.NearestSQL(ctx, query, 7)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Row, got[i].Row)
			assert.Equal(t, ids[want[i].Row], got[i].ID)
			assert.InDelta(t, want[i].Distance, got[i].Distance, 1e-9)
		}
	}

	_, err := c.NearestSQL(ctx, []float64{1, 2}, 3)
	assert.Error(t, err)
	got, err := c.NearestSQL(ctx, rows[0], 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
