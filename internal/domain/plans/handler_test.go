package plans

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barkday/internal/domain/reference"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlanHandler(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewResolver(nil), reference.NewStore(fixture()))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plans/resolve?group=Hound&breed=Beags&dog_years=30", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got struct {
		Source Source      `json:"source"`
		Band   Band        `json:"band"`
		Lanes  []LaneItems `json:"lanes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, SourceBreed, got.Source)
	assert.Equal(t, "adult_25_60", got.Band.Key)
	require.Len(t, got.Lanes, len(reference.Lanes))
	assert.Equal(t, reference.LaneTraining, got.Lanes[0].Lane)
	assert.Contains(t, got.Lanes[0].Items, "Scent games")
}

func TestResolvePlanHandler_NewbornIsPuppy(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewResolver(nil), reference.NewStore(fixture()))

	for _, q := range []string{"0", "0.3"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plans/resolve?group=Hound&dog_years="+q, nil))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var got struct {
			Band Band `json:"band"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "puppy_1_6", got.Band.Key, "dog_years=%s", q)
	}
}

func TestResolvePlanHandler_BadDogYears(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewResolver(nil), reference.NewStore(reference.Empty()))

	for _, q := range []string{"", "abc", "-3", "NaN"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plans/resolve?dog_years="+q, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "dog_years=%q", q)
	}
}
