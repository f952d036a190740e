package refdata

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"barkday/internal/domain/reference"
	"barkday/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
)

// Los editores suelen escribir en varios pasos (truncate + write + rename).
const debounce = 250 * time.Millisecond

// Reloader carga reference data y la publica en el Store con un swap atómico.
// Los cálculos en curso siguen con el snapshot que ya tomaron.
type Reloader struct {
	src      Source
	store    *reference.Store
	log      logger.Logger
	onReload func(Result)
}

func NewReloader(src Source, store *reference.Store, log logger.Logger) *Reloader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Reloader{src: src, store: store, log: log}
}

// OnReload registra un callback después de cada carga (métricas).
func (r *Reloader) OnReload(fn func(Result)) *Reloader {
	r.onReload = fn
	return r
}

// Reload carga y publica. Una tabla que falló conserva la del snapshot vigente.
func (r *Reloader) Reload(ctx context.Context) Result {
	res := Load(ctx, r.src, r.log)
	if len(res.Failed) > 0 {
		kept := make([]reference.Kind, 0, len(res.Failed))
		for k := range res.Failed {
			kept = append(kept, k)
		}
		slices.Sort(kept)
		res.Data = reference.Merge(res.Data, r.store.Snapshot(), kept...)
		r.log.Warn("keeping previous reference tables", map[string]any{"kinds": kept})
	}
	r.store.Swap(res.Data)
	if r.onReload != nil {
		r.onReload(res)
	}
	return res
}

// Watch recarga cuando cambia alguno de los archivos de referencia en dir.
// Bloquea hasta que ctx se cancela.
func (r *Reloader) Watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("refdata: watcher: %w", err)
	}
	defer w.Close()

	// se vigila el directorio y no los archivos: un rename reemplaza el inode
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("refdata: watch %s: %w", dir, err)
	}

	known := make(map[string]struct{}, len(reference.Kinds))
	for _, k := range reference.Kinds {
		known[k.FileName()] = struct{}{}
	}

	r.log.Info("watching reference data", map[string]any{"dir": dir})

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, watched := known[filepath.Base(ev.Name)]; !watched {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			r.log.Debug("reference file changed", map[string]any{"file": ev.Name, "op": ev.Op.String()})
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			r.Reload(ctx)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("reference watcher error", map[string]any{"err": err})
		}
	}
}
