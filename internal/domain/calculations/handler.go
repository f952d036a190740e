package calculations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"barkday/internal/domain/agemodel"
	"barkday/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Cálculo anónimo
	r.Post("/calculate", calculateHandler(svc))

	// Cálculos guardados (owner)
	r.Route("/runs", func(rr chi.Router) {
		rr.Post("/", saveRunHandler(svc))
		rr.Get("/", listRunsHandler(svc))
		rr.Get("/{runID}", getRunHandler(svc))
	})
}

type calculateRequest struct {
	Name           string  `json:"name"`
	BirthDate      string  `json:"birth_date"` // YYYY-MM-DD
	AdultWeightLb  float64 `json:"adult_weight_lb"`
	Chewer         string  `json:"chewer"` // Light|Normal|Aggressive
	Breed          string  `json:"breed"`
	Group          string  `json:"group"`
	UseSmoothing   *bool   `json:"use_smoothing"` // default true
	SeriesCount    int     `json:"series_count"`
	ShowEpigenetic bool    `json:"show_epigenetic"`
}

type runResponse struct {
	ID          string      `json:"id"`
	OwnerUserID string      `json:"owner_user_id"`
	Name        string      `json:"name"`
	Input       Input       `json:"input"`
	Result      Calculation `json:"result"`
	CreatedAt   time.Time   `json:"created_at"`
}

type runSummaryResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	UpcomingMilestone int       `json:"upcoming_milestone"`
	NextMilestoneDate time.Time `json:"next_milestone_date"`
	PlanSource        string    `json:"plan_source"`
	CreatedAt         time.Time `json:"created_at"`
}

// decodeInput valida lo que es de la capa HTTP (formato de fecha, peso > 0);
// el resto lo valida el servicio.
func decodeInput(r *http.Request) (Input, string) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Input{}, "invalid json"
	}

	s := strings.TrimSpace(req.BirthDate)
	if s == "" {
		return Input{}, "birth_date is required"
	}
	bd, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Input{}, "birth_date must be YYYY-MM-DD"
	}
	if req.AdultWeightLb <= 0 {
		return Input{}, "adult_weight_lb must be positive"
	}

	smooth := true
	if req.UseSmoothing != nil {
		smooth = *req.UseSmoothing
	}

	return Input{
		Profile: agemodel.Profile{
			Name:          req.Name,
			BirthDate:     bd,
			AdultWeightLb: agemodel.SnapWeight(req.AdultWeightLb),
			Chewer:        agemodel.ParseChewer(req.Chewer),
			BreedText:     req.Breed,
			GroupLabel:    req.Group,
			UseSmoothing:  smooth,
		},
		SeriesCount:    req.SeriesCount,
		ShowEpigenetic: req.ShowEpigenetic,
	}, ""
}

// calculateHandler godoc
// @Summary Calcular edad en dog-years y plan del próximo cumpleaños
// @Description Calcula la edad cronológica, los años humanos equivalentes (curva por peso, con suavizado opcional), la fecha del próximo cumpleaños "dog-year" y el plan de recomendaciones para esa edad. No requiere autenticación.
// @Tags calculations
// @Accept json
// @Produce json
// @Param payload body calculateRequest true "Perfil del perro; birth_date en formato YYYY-MM-DD"
// @Success 200 {object} Calculation
// @Failure 400 {string} string "invalid json / birth_date inválido / reglas de negocio"
// @Router /calculate [post]
func calculateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, msg := decodeInput(r)
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		c, err := svc.Calculate(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}

// saveRunHandler godoc
// @Summary Guardar un cálculo
// @Description Calcula y guarda el resultado para el usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags runs
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body calculateRequest true "Perfil del perro; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} runResponse
// @Failure 400 {string} string "invalid json / birth_date inválido / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /runs [post]
func saveRunHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, msg := decodeInput(r)
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		run, err := svc.Save(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRunResponse(run))
	}
}

// listRunsHandler godoc
// @Summary Listar cálculos guardados
// @Description Lista los cálculos guardados del usuario autenticado, del más nuevo al más viejo.
// @Tags runs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} runSummaryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /runs [get]
func listRunsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]runSummaryResponse, 0, len(items))
		for _, run := range items {
			out = append(out, runSummaryResponse{
				ID:                run.ID,
				Name:              run.Name,
				UpcomingMilestone: run.Result.Age.UpcomingMilestone,
				NextMilestoneDate: run.Result.Age.NextMilestoneDate,
				PlanSource:        string(run.Result.Plan.Source),
				CreatedAt:         run.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getRunHandler godoc
// @Summary Obtener un cálculo guardado
// @Tags runs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param runID path string true "ID del cálculo"
// @Success 200 {object} runResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "run not found"
// @Router /runs/{runID} [get]
func getRunHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		run, err := svc.GetByID(r.Context(), claims.UserID, chi.URLParam(r, "runID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRunResponse(run))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "run not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRunResponse(r Run) runResponse {
	return runResponse{
		ID:          r.ID,
		OwnerUserID: r.OwnerUserID,
		Name:        r.Name,
		Input:       r.Input,
		Result:      r.Result,
		CreatedAt:   r.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
