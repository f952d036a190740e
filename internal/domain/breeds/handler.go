package breeds

import (
	"encoding/json"
	"net/http"
	"strings"

	"barkday/internal/domain/reference"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, store *reference.Store) {
	r.Route("/breeds", func(br chi.Router) {
		br.Get("/resolve", resolveBreedHandler(store))
	})
	r.Get("/groups", listGroupsHandler())
}

type groupRefResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Examples []string `json:"examples"`
}

type resolveBreedResponse struct {
	Query     string            `json:"query"`
	Canonical string            `json:"canonical,omitempty"`
	Resolved  bool              `json:"resolved"`
	Group     *groupRefResponse `json:"group"`
	GroupKey  GroupKey          `json:"group_key"`
}

// resolveBreedHandler godoc
// @Summary Resolver una raza
// @Description Normaliza texto libre a una raza canónica usando solo matches exactos (nombre canónico o alias). Si la raza aparece en breed_groups devuelve el grupo y su clave de UI.
// @Tags breeds
// @Produce json
// @Param q query string true "Texto de la raza, ej: Yorkie"
// @Success 200 {object} resolveBreedResponse
// @Failure 400 {string} string "q is required"
// @Router /breeds/resolve [get]
func resolveBreedHandler(store *reference.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			http.Error(w, "q is required", http.StatusBadRequest)
			return
		}

		ref := store.Snapshot()
		resp := resolveBreedResponse{Query: q, GroupKey: DefaultGroup}

		if c, ok := NormalizeBreed(ref, q); ok {
			resp.Canonical = c
			resp.Resolved = true
		}
		if g, ok := FindGroupByBreedName(ref, q); ok {
			resp.Group = &groupRefResponse{ID: g.ID, Name: g.Name, Examples: g.Examples}
			resp.GroupKey = ResolveGroupKey(g.Name)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// listGroupsHandler godoc
// @Summary Listar grupos
// @Description Grupos de UI con descripción, ejemplos y notas.
// @Tags breeds
// @Produce json
// @Success 200 {array} GroupMeta
// @Router /groups [get]
func listGroupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, AllMeta())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
