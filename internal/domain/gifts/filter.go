package gifts

import (
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"barkday/internal/domain/agemodel"
)

// MaxResults es el tope de regalos devueltos.
const MaxResults = 12

// Buckets de tamaño por peso adulto.
const (
	BucketToy    = "toy"
	BucketSmall  = "small"
	BucketMedium = "medium"
	BucketLarge  = "large"
	BucketGiant  = "giant"
)

// SizeBucket: <20 toy, <30 small, <50 medium, <90 large, resto giant.
func SizeBucket(lb float64) string {
	switch {
	case lb < 20:
		return BucketToy
	case lb < 30:
		return BucketSmall
	case lb < 50:
		return BucketMedium
	case lb < 90:
		return BucketLarge
	default:
		return BucketGiant
	}
}

// Heurística por tag cuando el item no trae rango explícito.
const (
	puppyMaxDogYears  = 15
	seniorMinDogYears = 61
)

// Criteria es lo que el filtro necesita del perfil y del resultado de edad.
// DogYears NaN = edad desconocida (el predicado de edad pasa).
type Criteria struct {
	Bucket   string
	Chewer   string
	DogYears float64
}

// CriteriaFor arma Criteria desde un perfil y su AgeResult.
func CriteriaFor(p agemodel.Profile, age agemodel.AgeResult) Criteria {
	return Criteria{
		Bucket:   SizeBucket(p.AdultWeightLb),
		Chewer:   chewerTag(p.Chewer),
		DogYears: age.HumanEqYears,
	}
}

func chewerTag(c agemodel.Chewer) string {
	t := strings.ToLower(strings.TrimSpace(string(c)))
	if t == "" {
		return "normal"
	}
	return t
}

var defaultRand = rand.Float64

type scored struct {
	g     Gift
	score int
	rnd   float64
}

// Filter aplica los tres predicados (tamaño, chewer, edad) a cada item.
// Un predicado no ignorado que falla excluye el item; los que pasan suman score
// aunque estén ignorados. Orden: score desc, empates por un sorteo por item.
// Dedupe por id/url/title (gana el primero) y tope MaxResults.
//
// rnd nil usa math/rand; los tests pasan uno fijo.
func Filter(catalog []Gift, c Criteria, flags Flags, rnd func() float64) []Gift {
	if rnd == nil {
		rnd = defaultRand
	}
	if c.Chewer == "" {
		c.Chewer = "normal"
	}

	results := make([]scored, 0, len(catalog))
	for _, g := range catalog {
		ok, score := true, 0

		for _, p := range []struct {
			pass   bool
			ignore bool
		}{
			{sizeOK(g, c.Bucket), flags.IgnoreSize},
			{chewerOK(g, c.Chewer), flags.IgnoreChewer},
			{ageOK(g, c.DogYears), flags.IgnoreAge},
		} {
			if p.pass {
				score++
			} else if !p.ignore {
				ok = false
			}
		}

		if ok {
			results = append(results, scored{g: g, score: score, rnd: rnd()})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].rnd < results[j].rnd
	})

	seen := make(map[string]struct{}, len(results))
	top := make([]Gift, 0, MaxResults)
	for _, r := range results {
		key := r.g.DedupeKey()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		top = append(top, r.g)
		if len(top) >= MaxResults {
			break
		}
	}
	return top
}

func sizeOK(g Gift, bucket string) bool {
	if len(g.Sizes) == 0 {
		return true
	}
	for _, s := range g.Sizes {
		if s == "any" || s == bucket {
			return true
		}
	}
	return false
}

func chewerOK(g Gift, chewer string) bool {
	tag := strings.ToLower(strings.TrimSpace(g.Chewer))
	return tag == "" || tag == "any" || tag == chewer
}

func ageOK(g Gift, dogYears float64) bool {
	if math.IsNaN(dogYears) {
		return true
	}
	if g.MinDogYears == nil && g.MaxDogYears == nil {
		t := strings.ToLower(g.Tag)
		switch {
		case strings.Contains(t, "puppy"):
			return dogYears <= puppyMaxDogYears
		case strings.Contains(t, "senior"):
			return dogYears >= seniorMinDogYears
		default:
			return true
		}
	}
	if g.MinDogYears != nil && dogYears < *g.MinDogYears {
		return false
	}
	if g.MaxDogYears != nil && dogYears > *g.MaxDogYears {
		return false
	}
	return true
}
