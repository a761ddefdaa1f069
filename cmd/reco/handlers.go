package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/viant/reco/catalog"
	"github.com/viant/reco/internal/app"
	"github.com/viant/reco/internal/httputil"
	"github.com/viant/reco/recommender"
)

const (
	defaultK         = 5
	coverConcurrency = 4
)

type favoritesRequest struct {
	A1 string `json:"a1" validate:"required"`
	A2 string `json:"a2" validate:"required"`
	A3 string `json:"a3" validate:"required"`
}

type searchRequest struct {
	Point []float64 `json:"point" validate:"required,min=1"`
	K     int       `json:"k" validate:"omitempty,min=1"`
}

type suggestion struct {
	ID          string   `json:"id"`
	Display     string   `json:"display"`
	Weight      int      `json:"weight"`
	AlbumCovers []string `json:"album_covers"`
}

type neighbor struct {
	ID               string    `json:"id"`
	Display          string    `json:"display"`
	Distance         float64   `json:"distance"`
	RelativeDistance float64   `json:"relative_distance"`
	Point            []float64 `json:"point"`
	AlbumCovers      []string  `json:"album_covers,omitempty"`
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, recommender.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, recommender.ErrInvalidArgument), errors.Is(err, catalog.ErrInvalidFavorites):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func artistsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artists, err := deps.Catalog.ListArtists(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list artists", err, http.StatusInternalServerError)
			return
		}
		if artists == nil {
			artists = []catalog.Artist{}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"artists": artists})
	}
}

func favoritesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req favoritesRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		found, err := deps.Catalog.SubmitFavorites(r.Context(), [3]string{req.A1, req.A2, req.A3})
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to submit favorites", err, statusOf(err))
			return
		}
		names := make([]string, len(found))
		for i, s := range found {
			names[i] = s.Display
		}
		covers := fetchCovers(r.Context(), deps, names)
		results := make([]suggestion, len(found))
		for i, s := range found {
			results[i] = suggestion{ID: s.ID, Display: s.Display, Weight: s.Weight, AlbumCovers: covers[i]}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"results": results})
	}
}

func locationHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := deps.Recommender.Get()
		if err != nil {
			httputil.Fail(deps.Log, w, "recommender unavailable", err, http.StatusInternalServerError)
			return
		}
		id := chi.URLParam(r, "id")
		point, err := rec.Locate(id)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to locate artist", err, statusOf(err))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "point": point})
	}
}

func recommendationsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := deps.Recommender.Get()
		if err != nil {
			httputil.Fail(deps.Log, w, "recommender unavailable", err, http.StatusInternalServerError)
			return
		}
		k := defaultK
		if raw := r.URL.Query().Get("k"); raw != "" {
			if k, err = strconv.Atoi(raw); err != nil {
				httputil.Fail(deps.Log, w, "invalid k", err, http.StatusBadRequest)
				return
			}
		}
		id := chi.URLParam(r, "id")
		res, err := rec.Recommend(id, k)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to recommend", err, statusOf(err))
			return
		}
		neighbors, err := describe(r.Context(), deps, res)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to resolve artist names", err, http.StatusInternalServerError)
			return
		}
		names := make([]string, len(neighbors))
		for i, n := range neighbors {
			names[i] = n.Display
		}
		covers := fetchCovers(r.Context(), deps, names)
		for i := range neighbors {
			neighbors[i].AlbumCovers = covers[i]
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "recommendations": neighbors})
	}
}

func searchHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if req.K == 0 {
			req.K = defaultK
		}
		rec, err := deps.Recommender.Get()
		if err != nil {
			httputil.Fail(deps.Log, w, "recommender unavailable", err, http.StatusInternalServerError)
			return
		}
		res, err := rec.SearchNear(req.Point, req.K)
		if err != nil {
			httputil.Fail(deps.Log, w, "search failed", err, statusOf(err))
			return
		}
		neighbors, err := describe(r.Context(), deps, res)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to resolve artist names", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"results": neighbors})
	}
}

// describe attaches display names and distances relative to the farthest
// neighbour in the batch. Ids missing from the catalog display as themselves.
func describe(ctx context.Context, deps app.Deps, res recommender.Result) ([]neighbor, error) {
	names, err := deps.Catalog.DisplayNames(ctx, res.IDs)
	if err != nil {
		return nil, err
	}
	farthest := 0.0
	for _, d := range res.Distances {
		farthest = max(farthest, d)
	}
	out := make([]neighbor, res.Len())
	for i, id := range res.IDs {
		display, ok := names[id]
		if !ok {
			display = id
		}
		relative := 0.0
		if farthest > 0 {
			relative = res.Distances[i] / farthest
		}
		out[i] = neighbor{ID: id, Display: display, Distance: res.Distances[i], RelativeDistance: relative, Point: res.Points[i]}
	}
	return out, nil
}

// fetchCovers looks up covers for each name concurrently. A failed lookup
// degrades to no covers for that artist.
func fetchCovers(ctx context.Context, deps app.Deps, names []string) [][]string {
	out := make([][]string, len(names))
	for i := range out {
		out[i] = []string{}
	}
	if deps.Covers == nil || len(names) == 0 {
		return out
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(coverConcurrency)
	for i, name := range names {
		g.Go(func() error {
			covers, err := deps.Covers.Covers(ctx, name, deps.Config.CoverCount)
			if err != nil {
				deps.Log.Warn("cover lookup failed", "artist", name, "err", err)
				return nil
			}
			if covers != nil {
				out[i] = covers
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
