package router

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"barkday/internal/adapters/refdata"
	mem "barkday/internal/adapters/storage/memory"
	pg "barkday/internal/adapters/storage/postgres"
	"barkday/internal/domain/breeds"
	"barkday/internal/domain/calculations"
	"barkday/internal/domain/gifts"
	"barkday/internal/domain/plans"
	"barkday/internal/domain/reference"
	"barkday/internal/middleware"
	"barkday/internal/platform/logger"
	"barkday/internal/platform/metrics"
	"barkday/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Logger  logger.Logger    // nil => nop
	Metrics *metrics.Metrics // nil => sin /metrics

	// Reference data compartida. nil => store vacío (todo degrada a "no plan").
	Store *reference.Store
	// Opcional: habilita POST /reference/reload.
	Reloader *refdata.Reloader

	// Catálogo de regalos. nil => catálogo vacío.
	GiftSource gifts.Source

	// Opcional: si viene, los runs van a Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = reference.NewStore(nil)
	}
	giftSrc := opts.GiftSource
	if giftSrc == nil {
		giftSrc = gifts.StaticCatalog(nil)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(log.With(map[string]any{"component": "http"}), httpObserver(opts.Metrics)))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Get("/reference/status", referenceStatusHandler(store))
	if opts.Reloader != nil {
		r.Post("/reference/reload", referenceReloadHandler(opts.Reloader))
	}

	var runRepo calculations.Repository
	if opts.DB != nil {
		runRepo = pg.NewRunsRepo(opts.DB)
	} else {
		runRepo = mem.NewRunRepo()
	}

	// Services por módulo
	resolver := plans.NewResolver(log.With(map[string]any{"component": "plans"}))
	calcSvc := calculations.NewService(runRepo, store, log.With(map[string]any{"component": "calculations"}))
	giftsSvc := gifts.NewService(giftSrc, log.With(map[string]any{"component": "gifts"}))
	if opts.Metrics != nil {
		calcSvc.WithObserver(opts.Metrics)
		giftsSvc.WithObserver(opts.Metrics)
	}

	// Rutas por módulo
	breeds.RegisterRoutes(r, store)
	plans.RegisterRoutes(r, resolver, store)
	gifts.RegisterRoutes(r, giftsSvc)
	calculations.RegisterRoutes(r, calcSvc)

	return r
}

// un *Metrics nil dentro de la interfaz no es nil; se evita acá
func httpObserver(m *metrics.Metrics) middleware.HTTPObserver {
	if m == nil {
		return nil
	}
	return m
}

// referenceStatusHandler godoc
// @Summary Estado de la reference data
// @Description Cantidad de entradas por tabla en el snapshot actual. Una tabla en 0 indica que no se pudo cargar.
// @Tags reference
// @Produce json
// @Success 200 {object} reference.Stats
// @Router /reference/status [get]
func referenceStatusHandler(store *reference.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, store.Snapshot().Stats())
	}
}

type reloadResponse struct {
	Stats  reference.Stats   `json:"stats"`
	Failed map[string]string `json:"failed,omitempty"`
	Issues map[string]int    `json:"issues,omitempty"`
}

// referenceReloadHandler godoc
// @Summary Recargar la reference data
// @Description Vuelve a leer todas las tablas y las publica con un swap atómico. Requiere usuario autenticado.
// @Tags reference
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} reloadResponse
// @Failure 401 {string} string "unauthorized"
// @Router /reference/reload [post]
func referenceReloadHandler(rl *refdata.Reloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res := rl.Reload(r.Context())
		out := reloadResponse{Stats: res.Data.Stats()}
		if len(res.Failed) > 0 {
			out.Failed = make(map[string]string, len(res.Failed))
			for k, err := range res.Failed {
				out.Failed[string(k)] = err.Error()
			}
		}
		if len(res.Issues) > 0 {
			out.Issues = make(map[string]int, len(res.Issues))
			for k, is := range res.Issues {
				out.Issues[string(k)] = len(is)
			}
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
