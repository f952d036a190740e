package gifts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"barkday/internal/domain/agemodel"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/gifts", func(gr chi.Router) {
		gr.Post("/search", searchGiftsHandler(svc))
	})
}

type searchGiftsRequest struct {
	AdultWeightLb float64  `json:"adult_weight_lb"`
	Chewer        string   `json:"chewer"`     // Light|Normal|Aggressive (default Normal)
	BirthDate     string   `json:"birth_date"` // YYYY-MM-DD opcional
	DogYears      *float64 `json:"dog_years"`  // alternativa a birth_date
	UseSmoothing  bool     `json:"use_smoothing"`
	IgnoreSize    bool     `json:"ignore_size"`
	IgnoreChewer  bool     `json:"ignore_chewer"`
	IgnoreAge     bool     `json:"ignore_age"`
}

// searchGiftsHandler godoc
// @Summary Buscar regalos
// @Description Filtra el feed de regalos por tamaño (según peso adulto), tipo de masticador y edad en dog-years. Cada filtro se puede ignorar. Devuelve como máximo 12 items; los empates se mezclan en cada llamada.
// @Tags gifts
// @Accept json
// @Produce json
// @Param payload body searchGiftsRequest true "Perfil y flags; birth_date en formato YYYY-MM-DD"
// @Success 200 {object} SearchResult
// @Failure 400 {string} string "invalid json / birth_date inválido / reglas de negocio"
// @Failure 502 {string} string "gift feed unavailable"
// @Router /gifts/search [post]
func searchGiftsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchGiftsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := SearchInput{
			AdultWeightLb: req.AdultWeightLb,
			Chewer:        agemodel.ParseChewer(req.Chewer),
			DogYears:      req.DogYears,
			UseSmoothing:  req.UseSmoothing,
			Flags: Flags{
				IgnoreSize:   req.IgnoreSize,
				IgnoreChewer: req.IgnoreChewer,
				IgnoreAge:    req.IgnoreAge,
			},
		}
		if s := strings.TrimSpace(req.BirthDate); s != "" {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.BirthDate = &t
		}

		res, err := svc.Search(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrFeedUnavailable):
				http.Error(w, "gift feed unavailable", http.StatusBadGateway)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
