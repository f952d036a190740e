package breeds

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

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, reference.NewStore(testRef()))
	return r
}

func TestResolveBreedHandler(t *testing.T) {
	h := newTestRouter()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/breeds/resolve?q=Yorkie", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got resolveBreedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Resolved)
	assert.Equal(t, "Yorkshire Terrier", got.Canonical)
	require.NotNil(t, got.Group)
	assert.Equal(t, "toy", got.Group.ID)
	assert.Equal(t, GroupToy, got.GroupKey)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/breeds/resolve?q=xyz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	got = resolveBreedResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.False(t, got.Resolved)
	assert.Nil(t, got.Group)
	assert.Equal(t, GroupMixedOther, got.GroupKey)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/breeds/resolve", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListGroupsHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/groups", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []GroupMeta
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, len(GroupKeys))
}
