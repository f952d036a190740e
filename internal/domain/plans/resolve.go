package plans

import (
	"strings"

	"barkday/internal/domain/breeds"
	"barkday/internal/domain/reference"
	"barkday/internal/platform/logger"
)

// Source indica de dónde salió el plan primario.
type Source string

const (
	SourceBreed Source = "breed"
	SourceGroup Source = "group"
	SourceNone  Source = "none"
)

// MaxOverlay es el tope de insights de taxonomía sumados al plan, en total.
const MaxOverlay = 3

// Plan son las seis lanes; siempre presentes aunque estén vacías.
type Plan struct {
	reference.LaneSet
}

type LaneItems struct {
	Lane  reference.Lane `json:"lane"`
	Items []string       `json:"items"`
}

// Ordered devuelve las lanes en el orden fijo de presentación.
func (p Plan) Ordered() []LaneItems {
	out := make([]LaneItems, 0, len(reference.Lanes))
	for _, l := range reference.Lanes {
		out = append(out, LaneItems{Lane: l, Items: p.Get(l)})
	}
	return out
}

type Resolution struct {
	Plan           Plan            `json:"plan"`
	Band           Band            `json:"band"`
	Source         Source          `json:"source"`
	CanonicalBreed string          `json:"canonical_breed,omitempty"`
	BreedAge       int             `json:"breed_age,omitempty"` // clave de ages usada
	GroupKey       breeds.GroupKey `json:"group_key"`
	OverlayAdded   int             `json:"overlay_added"`
}

type Resolver struct {
	log logger.Logger
}

func NewResolver(log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{log: log}
}

// Resolve sin logger.
func Resolve(ref *reference.ReferenceData, groupLabel, breedText string, dogYears float64) Resolution {
	return NewResolver(nil).Resolve(ref, groupLabel, breedText, dogYears)
}

// Resolve arma el plan para dogYears: breed-specific primero, banded del grupo como
// fallback y para rellenar lanes vacías, y al final el overlay de taxonomía.
// Con datos faltantes degrada a un plan vacío, nunca falla.
func (r *Resolver) Resolve(ref *reference.ReferenceData, groupLabel, breedText string, dogYears float64) Resolution {
	if ref == nil {
		ref = reference.Empty()
	}

	band := BandFor(round(dogYears))
	res := Resolution{
		Band:     band,
		Source:   SourceNone,
		GroupKey: breeds.ResolveGroupKey(groupLabel),
	}

	canonical, planKey := breedKeys(ref, breedText)
	res.CanonicalBreed = canonical

	groupLanes, groupOK := groupPlan(ref, groupLabel, res.GroupKey, band.Key)

	var lanes reference.LaneSet
	switch entry, age, ok := breedEntry(ref, planKey, dogYears); {
	case ok:
		lanes = entry.Clone()
		res.Source = SourceBreed
		res.BreedAge = age
		if groupOK {
			fillEmpty(&lanes, groupLanes)
		}
	case groupOK:
		lanes = groupLanes.Clone()
		res.Source = SourceGroup
	default:
		lanes = reference.LaneSet{}.Clone()
	}

	if res.Source != SourceNone && canonical != "" {
		res.OverlayAdded = applyOverlay(ref, canonical, &lanes)
	}
	res.Plan = Plan{LaneSet: lanes}

	fields := map[string]any{
		"source":    string(res.Source),
		"band":      band.Key,
		"group":     strings.TrimSpace(groupLabel),
		"group_key": string(res.GroupKey),
		"breed":     canonical,
		"overlay":   res.OverlayAdded,
	}
	if res.Source == SourceNone {
		r.log.Warn("plan source: none", fields)
	} else {
		r.log.Debug("plan source", fields)
	}
	return res
}

// breedKeys devuelve la breed canónica (para taxonomía) y la clave de reco-breed.
func breedKeys(ref *reference.ReferenceData, breedText string) (canonical, planKey string) {
	if c, ok := breeds.NormalizeBreed(ref, breedText); ok {
		canonical = c
		if k, ok := ref.BreedPlanKey(c); ok {
			planKey = k
		}
		return canonical, planKey
	}
	if k, ok := ref.BreedPlanKey(breedText); ok {
		return k, k
	}
	return "", ""
}

// breedEntry es primario solo si la entrada más cercana tiene alguna lane con items.
func breedEntry(ref *reference.ReferenceData, planKey string, dogYears float64) (reference.LaneSet, int, bool) {
	if planKey == "" {
		return reference.LaneSet{}, 0, false
	}
	bp, ok := ref.BreedPlan(planKey)
	if !ok {
		return reference.LaneSet{}, 0, false
	}
	e, age, ok := NearestAgeEntry(bp.Ages, dogYears)
	if !ok || e.Lanes == nil || e.Lanes.IsEmpty() {
		return reference.LaneSet{}, 0, false
	}
	return *e.Lanes, age, true
}

// groupPlan prueba primero la etiqueta tal cual (reco-banded puede tener grupos
// que no son de UI) y después la clave resuelta.
func groupPlan(ref *reference.ReferenceData, label string, key breeds.GroupKey, band string) (reference.LaneSet, bool) {
	if l := strings.TrimSpace(label); l != "" {
		if ls, ok := ref.Banded(l, band); ok {
			return ls, true
		}
	}
	return ref.Banded(string(key), band)
}

// fillEmpty completa lane por lane; nunca pisa una lane con items.
func fillEmpty(dst *reference.LaneSet, src reference.LaneSet) {
	for _, lane := range reference.Lanes {
		if len(dst.Get(lane)) > 0 {
			continue
		}
		dst.Set(lane, append([]string{}, src.Get(lane)...))
	}
}
