package gifts

import (
	"fmt"
	"math"
	"testing"

	"barkday/internal/domain/agemodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

// rnd determinístico: devuelve los valores en orden.
func seq(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	}
}

func titles(gs []Gift) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.Title)
	}
	return out
}

func TestSizeBucket(t *testing.T) {
	cases := map[float64]string{
		5: "toy", 19.9: "toy", 20: "small", 29: "small", 30: "medium",
		49: "medium", 50: "large", 89: "large", 90: "giant", 200: "giant",
	}
	for lb, want := range cases {
		assert.Equal(t, want, SizeBucket(lb), "lb=%v", lb)
	}
}

func TestCriteriaFor(t *testing.T) {
	c := CriteriaFor(agemodel.Profile{AdultWeightLb: 45, Chewer: agemodel.ChewerAggressive}, agemodel.AgeResult{HumanEqYears: 30})
	assert.Equal(t, Criteria{Bucket: "medium", Chewer: "aggressive", DogYears: 30}, c)

	c = CriteriaFor(agemodel.Profile{AdultWeightLb: 10}, agemodel.AgeResult{})
	assert.Equal(t, "normal", c.Chewer)
}

func TestFilter_PredicatesExclude(t *testing.T) {
	catalog := []Gift{
		{ID: "1", Title: "Small only", Sizes: []string{"small"}},
		{ID: "2", Title: "Any size", Sizes: []string{"any"}},
		{ID: "3", Title: "Aggressive", Chewer: "aggressive"},
		{ID: "4", Title: "Puppy", Tag: "Puppy teething"},
		{ID: "5", Title: "Senior", Tag: "senior comfort"},
		{ID: "6", Title: "Range", MinDogYears: fptr(20), MaxDogYears: fptr(40)},
		{ID: "7", Title: "No constraints"},
	}
	c := Criteria{Bucket: "medium", Chewer: "normal", DogYears: 30}

	got := Filter(catalog, c, Flags{}, seq(0.5))
	assert.ElementsMatch(t, []string{"Any size", "Range", "No constraints"}, titles(got))
}

func TestFilter_IgnoreFlagsStillScore(t *testing.T) {
	catalog := []Gift{
		{ID: "a", Title: "Wrong size", Sizes: []string{"giant"}},
		{ID: "b", Title: "Right size", Sizes: []string{"medium"}},
	}
	c := Criteria{Bucket: "medium", Chewer: "normal", DogYears: 30}

	// "Wrong size" sorteado primero, pero el que cumple tamaño tiene más score
	got := Filter(catalog, c, Flags{IgnoreSize: true}, seq(0.1, 0.9))
	assert.Equal(t, []string{"Right size", "Wrong size"}, titles(got))
}

func TestFilter_TiesShuffledByRand(t *testing.T) {
	catalog := []Gift{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}
	c := Criteria{Bucket: "small", Chewer: "normal", DogYears: 10}

	assert.Equal(t, []string{"C", "B", "A"}, titles(Filter(catalog, c, Flags{}, seq(0.9, 0.5, 0.1))))
	assert.Equal(t, []string{"A", "C", "B"}, titles(Filter(catalog, c, Flags{}, seq(0.1, 0.9, 0.5))))
}

func TestFilter_DedupeAndCap(t *testing.T) {
	var catalog []Gift
	for i := 0; i < 20; i++ {
		catalog = append(catalog, Gift{ID: fmt.Sprintf("g%d", i), Title: fmt.Sprintf("Gift %d", i)})
	}
	catalog = append(catalog,
		Gift{ID: "g0", Title: "Duplicate id"},
		Gift{URL: "https://x/1", Title: "By url"},
		Gift{URL: "https://x/1", Title: "Same url"},
		Gift{},
	)
	c := Criteria{Bucket: "small", Chewer: "normal", DogYears: math.NaN()}

	got := Filter(catalog, c, Flags{}, seq(0.5))
	require.Len(t, got, MaxResults)
	assert.Equal(t, "Gift 0", got[0].Title, "stable among equal rnd: first seen wins")

	seen := map[string]bool{}
	for _, g := range got {
		assert.False(t, seen[g.DedupeKey()], g.DedupeKey())
		seen[g.DedupeKey()] = true
	}

	small := Filter(catalog[20:], c, Flags{}, seq(0.5))
	assert.Equal(t, []string{"Duplicate id", "By url"}, titles(small))
}

func TestFilter_UnknownAgePasses(t *testing.T) {
	catalog := []Gift{{ID: "p", Title: "Puppy", Tag: "puppy"}, {ID: "r", Title: "Range", MinDogYears: fptr(70)}}
	c := Criteria{Bucket: "toy", Chewer: "light", DogYears: math.NaN()}
	assert.Len(t, Filter(catalog, c, Flags{}, nil), 2)
}

func TestFilter_ChewerDefaultsToNormal(t *testing.T) {
	catalog := []Gift{{ID: "n", Title: "Normal", Chewer: "Normal"}, {ID: "l", Title: "Light", Chewer: "light"}}
	got := Filter(catalog, Criteria{Bucket: "toy", DogYears: 5}, Flags{}, seq(0.5))
	assert.Equal(t, []string{"Normal"}, titles(got))
}
