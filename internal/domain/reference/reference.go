package reference

import (
	"sort"
	"strings"
)

// ReferenceData es un snapshot inmutable de las tablas de referencia.
// Se construye una vez con New y después solo se lee; los slices que devuelven
// los getters son compartidos y no deben modificarse.
type ReferenceData struct {
	t Tables

	canonByFold map[string]string // "yorkshire terrier" -> "Yorkshire Terrier"
	aliasByFold map[string]string // "yorkie" -> "Yorkshire Terrier"
	breedByFold map[string]string // claves de reco-breed
	groupByID   map[string]int
}

// Empty devuelve un snapshot sin datos (el core degrada a "no plan").
func Empty() *ReferenceData {
	return New(Tables{})
}

func New(t Tables) *ReferenceData {
	if t.Aliases == nil {
		t.Aliases = Aliases{}
	}
	if t.Banded == nil {
		t.Banded = BandedPlans{}
	}
	if t.Breeds == nil {
		t.Breeds = BreedPlans{}
	}
	if t.Taxonomy == nil {
		t.Taxonomy = Taxonomy{}
	}

	rd := &ReferenceData{
		t:           t,
		canonByFold: make(map[string]string, len(t.Aliases)),
		aliasByFold: map[string]string{},
		breedByFold: make(map[string]string, len(t.Breeds)),
		groupByID:   make(map[string]int, len(t.Groups)),
	}

	// Orden estable: si dos canónicas reclaman el mismo alias, gana la primera alfabética.
	canons := make([]string, 0, len(t.Aliases))
	for c := range t.Aliases {
		canons = append(canons, c)
	}
	sort.Strings(canons)

	for _, c := range canons {
		k := fold(c)
		if k == "" {
			continue
		}
		if _, ok := rd.canonByFold[k]; !ok {
			rd.canonByFold[k] = c
		}
	}
	for _, c := range canons {
		for _, a := range t.Aliases[c] {
			k := fold(a)
			if k == "" {
				continue
			}
			if _, ok := rd.aliasByFold[k]; !ok {
				rd.aliasByFold[k] = c
			}
		}
	}

	breeds := make([]string, 0, len(t.Breeds))
	for b := range t.Breeds {
		breeds = append(breeds, b)
	}
	sort.Strings(breeds)
	for _, b := range breeds {
		if _, ok := rd.breedByFold[fold(b)]; !ok {
			rd.breedByFold[fold(b)] = b
		}
	}

	for i, g := range t.Groups {
		if _, ok := rd.groupByID[g.ID]; !ok && g.ID != "" {
			rd.groupByID[g.ID] = i
		}
	}

	return rd
}

// Tables devuelve las tablas del snapshot. Son compartidas: solo lectura.
func (r *ReferenceData) Tables() Tables { return r.t }

// Merge arma un snapshot con las tablas de next, salvo las de keep,
// que se copian de prev.
func Merge(next, prev *ReferenceData, keep ...Kind) *ReferenceData {
	if prev == nil || len(keep) == 0 {
		return next
	}
	t, old := next.t, prev.t
	for _, k := range keep {
		switch k {
		case KindAliases:
			t.Aliases = old.Aliases
		case KindGroups:
			t.Groups = old.Groups
		case KindRecoBanded:
			t.Banded = old.Banded
		case KindRecoBreed:
			t.Breeds = old.Breeds
		case KindTaxonomy:
			t.Taxonomy = old.Taxonomy
		}
	}
	return New(t)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Canonical busca una clave canónica del alias table (case-insensitive, exacta).
func (r *ReferenceData) Canonical(q string) (string, bool) {
	c, ok := r.canonByFold[fold(q)]
	return c, ok
}

// AliasTarget busca q entre los aliases (case-insensitive, exacta).
func (r *ReferenceData) AliasTarget(q string) (string, bool) {
	c, ok := r.aliasByFold[fold(q)]
	return c, ok
}

// BreedPlanKey busca q entre las claves de reco-breed (case-insensitive, exacta).
func (r *ReferenceData) BreedPlanKey(q string) (string, bool) {
	k, ok := r.breedByFold[fold(q)]
	return k, ok
}

func (r *ReferenceData) Groups() []BreedGroup { return r.t.Groups }

func (r *ReferenceData) GroupByID(id string) (BreedGroup, bool) {
	i, ok := r.groupByID[strings.TrimSpace(id)]
	if !ok {
		return BreedGroup{}, false
	}
	return r.t.Groups[i], true
}

// Banded devuelve el plan del grupo para una band; ok=false si falta o no tiene lanes.
func (r *ReferenceData) Banded(group, band string) (LaneSet, bool) {
	bands, ok := r.t.Banded[group]
	if !ok {
		return LaneSet{}, false
	}
	e, ok := bands[band]
	if !ok || e.Lanes == nil {
		return LaneSet{}, false
	}
	return *e.Lanes, true
}

// BandedGroups lista los grupos presentes en reco-banded (ordenados).
func (r *ReferenceData) BandedGroups() []string {
	out := make([]string, 0, len(r.t.Banded))
	for g := range r.t.Banded {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func (r *ReferenceData) BreedPlan(canonical string) (BreedPlan, bool) {
	bp, ok := r.t.Breeds[canonical]
	return bp, ok
}

func (r *ReferenceData) Clusters(canonical string) []string {
	return r.t.Taxonomy[canonical].Clusters
}

// Stats es lo que se loguea al cargar.
type Stats struct {
	Aliases  int `json:"aliases"`
	Groups   int `json:"groups"`
	Banded   int `json:"banded"`
	Breeds   int `json:"breeds"`
	Taxonomy int `json:"taxonomy"`
}

func (r *ReferenceData) Stats() Stats {
	return Stats{
		Aliases:  len(r.t.Aliases),
		Groups:   len(r.t.Groups),
		Banded:   len(r.t.Banded),
		Breeds:   len(r.t.Breeds),
		Taxonomy: len(r.t.Taxonomy),
	}
}
