package plans

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"barkday/internal/domain/reference"
)

// Band es un rango fijo de dog-years (inclusive en ambos extremos).
type Band struct {
	Key   string `json:"key"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

var Bands = []Band{
	{Key: "puppy_1_6", Min: 1, Max: 6, Label: "Puppy I (1–6 dog-years)"},
	{Key: "puppy_7_10", Min: 7, Max: 10, Label: "Puppy II (7–10 dog-years)"},
	{Key: "puppy_11_15", Min: 11, Max: 15, Label: "Puppy III (11–15 dog-years)"},
	{Key: "young_16_24", Min: 16, Max: 24, Label: "Young (16–24 dog-years)"},
	{Key: "adult_25_60", Min: 25, Max: 60, Label: "Adult (25–60 dog-years)"},
	{Key: "senior_61p", Min: 61, Max: 999, Label: "Senior (61+ dog-years)"},
}

// BandFor devuelve la band que contiene dy. Debajo de la primera (recién
// nacido) cae en la primera; por encima de 999, en la última.
func BandFor(dy int) Band {
	if dy < Bands[0].Min {
		return Bands[0]
	}
	for _, b := range Bands {
		if dy >= b.Min && dy <= b.Max {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// round como Math.round: .5 redondea hacia arriba.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// NearestAgeEntry elige la entrada de ages para round(dogYears):
// la exacta, si no la mayor clave <= want, si no la más cercana (empate: la menor).
// Claves no numéricas se ignoran.
func NearestAgeEntry(ages map[string]reference.PlanEntry, dogYears float64) (reference.PlanEntry, int, bool) {
	if len(ages) == 0 {
		return reference.PlanEntry{}, 0, false
	}
	want := round(dogYears)

	byAge := make(map[int]reference.PlanEntry, len(ages))
	keys := make([]int, 0, len(ages))
	for k, e := range ages {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			continue
		}
		if _, dup := byAge[n]; dup {
			continue
		}
		byAge[n] = e
		keys = append(keys, n)
	}
	if len(keys) == 0 {
		return reference.PlanEntry{}, 0, false
	}
	sort.Ints(keys)

	if e, ok := byAge[want]; ok {
		return e, want, true
	}

	le := -1
	for i, k := range keys {
		if k <= want {
			le = i
		}
	}
	if le >= 0 {
		return byAge[keys[le]], keys[le], true
	}

	best := keys[0]
	bd := abs(keys[0] - want)
	for _, k := range keys[1:] {
		if d := abs(k - want); d < bd {
			best, bd = k, d
		}
	}
	return byAge[best], best, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
