package agemodel

import (
	"strings"
	"time"
)

// Chewer describe qué tan fuerte mastica el perro (se usa al filtrar regalos).
// @Enum Light, Normal, Aggressive
type Chewer string

const (
	ChewerLight      Chewer = "Light"
	ChewerNormal     Chewer = "Normal"
	ChewerAggressive Chewer = "Aggressive"
)

// ParseChewer acepta cualquier capitalización; vacío o desconocido => Normal.
func ParseChewer(s string) Chewer {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ChewerLight
	case "aggressive":
		return ChewerAggressive
	default:
		return ChewerNormal
	}
}

// Profile es el input de un cálculo. Inmutable durante el cálculo.
type Profile struct {
	Name          string    `json:"name"`
	BirthDate     time.Time `json:"birth_date"`
	AdultWeightLb float64   `json:"adult_weight_lb"` // 5–200, snapeado a pasos de 5 lb por la capa HTTP
	Chewer        Chewer    `json:"chewer"`
	BreedText     string    `json:"breed_text"`  // texto libre
	GroupLabel    string    `json:"group_label"` // grupo elegido por el usuario (puede ser pisado por el breed mapeado)
	UseSmoothing  bool      `json:"use_smoothing"`
}

// AgeResult se deriva de Profile en cada cálculo; nunca se muta.
type AgeResult struct {
	ChronoYears           float64 `json:"chrono_years"`
	ChronoYearsInt        int     `json:"chrono_years_int"`
	ChronoMonthsRemainder int     `json:"chrono_months_remainder"`

	HumanEqYears float64 `json:"human_eq_years"`
	Slope        float64 `json:"slope"`

	UpcomingMilestone  int       `json:"upcoming_milestone"`
	NextMilestoneDate  time.Time `json:"next_milestone_date"`
	DaysUntilMilestone int       `json:"days_until_milestone"`
}
