package refdata

import (
	"context"
	"sync"

	"barkday/internal/domain/reference"
	"barkday/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// máximo de issues de validación logueados por archivo
const maxLoggedIssues = 20

// Result es lo que dejó una carga. Failed tiene las tablas que no se pudieron leer.
type Result struct {
	Data   *reference.ReferenceData
	Failed map[reference.Kind]error
	Issues map[reference.Kind][]reference.Issue
}

// Load trae todas las tablas en paralelo. Nunca falla: una tabla que no se pudo
// bajar o decodificar queda vacía y el core degrada a "no plan".
// Los problemas de contrato (Validate) solo se loguean.
func Load(ctx context.Context, src Source, log logger.Logger) Result {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(map[string]any{"source": src.Name()})

	var (
		mu   sync.Mutex
		docs = make(map[reference.Kind][]byte, len(reference.Kinds))
		res  = Result{
			Failed: map[reference.Kind]error{},
			Issues: map[reference.Kind][]reference.Issue{},
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, k := range reference.Kinds {
		g.Go(func() error {
			b, err := src.Fetch(gctx, k)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[k] = err
				return nil
			}
			docs[k] = b
			return nil
		})
	}
	_ = g.Wait()

	tables, decodeErrs := reference.Decode(docs)
	for k, err := range decodeErrs {
		res.Failed[k] = err
	}

	for _, k := range reference.Kinds {
		b, ok := docs[k]
		if !ok {
			continue
		}
		if _, bad := decodeErrs[k]; bad {
			continue
		}
		if issues := reference.Validate(k, b); len(issues) > 0 {
			res.Issues[k] = issues
		}
	}

	res.Data = reference.New(tables)
	logResult(log, res)
	return res
}

func logResult(log logger.Logger, res Result) {
	for k, err := range res.Failed {
		log.Warn("reference table unavailable", map[string]any{"kind": string(k), "err": err})
	}
	for k, issues := range res.Issues {
		for i, is := range issues {
			if i >= maxLoggedIssues {
				log.Warn("more reference issues omitted", map[string]any{"kind": string(k), "omitted": len(issues) - i})
				break
			}
			log.Warn("reference issue", map[string]any{"kind": string(k), "path": is.Path, "issue": is.Message})
		}
	}

	st := res.Data.Stats()
	log.Info("reference data loaded", map[string]any{
		"aliases":  st.Aliases,
		"groups":   st.Groups,
		"banded":   st.Banded,
		"breeds":   st.Breeds,
		"taxonomy": st.Taxonomy,
		"failed":   len(res.Failed),
	})
}
