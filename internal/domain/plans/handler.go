package plans

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"barkday/internal/domain/reference"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, resolver *Resolver, store *reference.Store) {
	r.Route("/plans", func(pr chi.Router) {
		pr.Get("/resolve", resolvePlanHandler(resolver, store))
	})
}

type resolvePlanResponse struct {
	Resolution
	Lanes []LaneItems `json:"lanes"`
}

// resolvePlanHandler godoc
// @Summary Resolver el plan para una edad
// @Description Devuelve el plan de recomendaciones (seis lanes) para un grupo/raza y una edad en dog-years. Usa el plan de la raza si existe, el del grupo como respaldo, y agrega hasta 3 items de los clusters de la raza.
// @Tags plans
// @Produce json
// @Param group query string false "Etiqueta de grupo, ej: Sporting / Gun Dogs"
// @Param breed query string false "Raza en texto libre"
// @Param dog_years query number true "Edad objetivo en dog-years"
// @Success 200 {object} resolvePlanResponse
// @Failure 400 {string} string "dog_years must be a number"
// @Router /plans/resolve [get]
func resolvePlanHandler(resolver *Resolver, store *reference.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		dy, err := strconv.ParseFloat(strings.TrimSpace(q.Get("dog_years")), 64)
		if err != nil || math.IsNaN(dy) || math.IsInf(dy, 0) || dy < 0 {
			http.Error(w, "dog_years must be a number", http.StatusBadRequest)
			return
		}

		res := resolver.Resolve(store.Snapshot(), q.Get("group"), q.Get("breed"), dy)
		writeJSON(w, http.StatusOK, resolvePlanResponse{
			Resolution: res,
			Lanes:      res.Plan.Ordered(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
