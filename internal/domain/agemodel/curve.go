package agemodel

import (
	"math"
	"time"
)

const (
	// DaysPerYear es el año "fijo" usado para convertir días <-> años.
	DaysPerYear = 365.2425

	MinWeightLb = 5.0
	MaxWeightLb = 200.0

	bisectionIterations = 40
	bisectionBracket    = 5.0 // años
)

const day = 24 * time.Hour

func clamp(n, lo, hi float64) float64 {
	return math.Min(math.Max(n, lo), hi)
}

// SlopeFromWeight devuelve cuántos "años humanos" suma cada año cronológico después del 2do.
// Interpolación lineal por tramos: <=20lb 5.0, 50lb 6.0, 90lb 7.0, 200lb 7.2.
func SlopeFromWeight(lb float64) float64 {
	w := clamp(lb, MinWeightLb, MaxWeightLb)
	switch {
	case w <= 20:
		return 5
	case w <= 50:
		return 5 + (w-20)*(1.0/30)
	case w <= 90:
		return 6 + (w-50)*(1.0/40)
	default:
		return 7 + (w-90)*(0.2/110)
	}
}

// smoothBlend es un smoothstep cúbico t²(3-2t) centrado en c con ancho w.
func smoothBlend(x, c, w float64) float64 {
	t := clamp((x-(c-w/2))/w, 0, 1)
	return t * t * (3 - 2*t)
}

// HumanEqYears mapea edad cronológica (años) a años humanos equivalentes.
//
// Sin suavizado: 15 el primer año, +9 el segundo, +slope cada año siguiente.
// Con suavizado: las pendientes se mezclan alrededor de t=1 (ancho 0.25) y t=2 (ancho 0.5).
// El valor en t=2 del tramo suavizado se obtiene llamando a la misma función en 2.0.
func HumanEqYears(years, lb float64, smooth bool) float64 {
	r := SlopeFromWeight(lb)
	if !smooth {
		switch {
		case years <= 1:
			return 15 * years
		case years <= 2:
			return 15 + 9*(years-1)
		default:
			return 24 + r*(years-2)
		}
	}

	f1 := smoothBlend(years, 1, 0.25)
	slope12 := 15 + f1*(9-15)
	if years <= 2 {
		a := math.Min(years, 1) * 15
		b := 0.0
		if years > 1 {
			b = (years - 1) * slope12
		}
		return a + b
	}

	f2 := smoothBlend(years, 2, 0.5)
	post := 9 + f2*(r-9)
	upto2 := HumanEqYears(2, lb, true)
	return upto2 + (years-2)*post
}

// DaysBetween cuenta días completos entre a y b (floor).
func DaysBetween(a, b time.Time) int {
	return int(math.Floor(secondsBetween(a, b) / day.Seconds()))
}

// time.Time.Sub satura a ~292 años; se resta en segundos Unix.
func secondsBetween(a, b time.Time) float64 {
	return float64(b.Unix()-a.Unix()) + float64(b.Nanosecond()-a.Nanosecond())/1e9
}

// ChronoYears es la edad cronológica en años (días completos / 365.2425).
func ChronoYears(birth, now time.Time) float64 {
	return float64(DaysBetween(birth, now)) / DaysPerYear
}

// YearsAt convierte una fecha en edad cronológica exacta (sin redondear a días).
func YearsAt(birth, at time.Time) float64 {
	return secondsBetween(birth, at) / day.Seconds() / DaysPerYear
}

// DateAtYears es la inversa de YearsAt. Suma en segundos Unix para no desbordar time.Duration.
func DateAtYears(birth time.Time, years float64) time.Time {
	secs := years * DaysPerYear * day.Seconds()
	whole := math.Floor(secs)
	nsec := int64(math.Round((secs - whole) * 1e9))
	at := time.Unix(birth.Unix()+int64(whole), int64(birth.Nanosecond())+nsec)
	return at.In(birth.Location())
}

// NextMilestoneDate busca por bisección la fecha en la que HumanEqYears llega a floor(currentH)+1.
// El intervalo es [edad actual, edad actual + 5 años] y se parte 40 veces (~1e-9 años de precisión).
func NextMilestoneDate(birth, now time.Time, currentH, lb float64, smooth bool) time.Time {
	target := math.Floor(currentH) + 1
	yearsNow := ChronoYears(birth, now)

	lo, hi := yearsNow, yearsNow+bisectionBracket
	for i := 0; i < bisectionIterations; i++ {
		mid := (lo + hi) / 2
		if HumanEqYears(mid, lb, smooth) >= target {
			hi = mid
		} else {
			lo = mid
		}
	}
	return DateAtYears(birth, (lo+hi)/2)
}

// MilestoneSeries devuelve las próximas n fechas de cumpleaños "dog-year".
// Cada fecha se calcula a partir del hito entero anterior.
func MilestoneSeries(birth, now time.Time, currentH, lb float64, smooth bool, n int) []Milestone {
	if n <= 0 {
		return nil
	}
	if n > MaxSeries {
		n = MaxSeries
	}

	out := make([]Milestone, 0, n)
	upcoming := int(math.Floor(currentH)) + 1
	at := NextMilestoneDate(birth, now, currentH, lb, smooth)
	for i := 0; i < n; i++ {
		out = append(out, Milestone{DogYears: upcoming, Date: at})
		upcoming++
		at = NextMilestoneDate(birth, now, float64(upcoming-1), lb, smooth)
	}
	return out
}

// MaxSeries limita MilestoneSeries.
const MaxSeries = 10

// Milestone es un cumpleaños "dog-year" futuro.
type Milestone struct {
	DogYears int       `json:"dog_years"`
	Date     time.Time `json:"date"`
}

// SnapWeight redondea a pasos de 5 lb (lo mismo que hace el slider de la UI).
func SnapWeight(lb float64) float64 {
	return math.Round(lb/5) * 5
}
