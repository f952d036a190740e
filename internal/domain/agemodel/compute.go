package agemodel

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// MaxAgeYears es la edad cronológica máxima aceptada.
const MaxAgeYears = 50

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrBirthDateRequired = fmt.Errorf("%w: birth date is required", ErrInvalidInput)
	ErrBirthDateInFuture = fmt.Errorf("%w: birth date is in the future", ErrInvalidInput)
	ErrBirthDateTooOld   = fmt.Errorf("%w: birth date is more than %d years ago", ErrInvalidInput, MaxAgeYears)
	ErrInvalidWeight     = fmt.Errorf("%w: weight must be a finite number", ErrInvalidInput)
)

// Validate rechaza lo que no puede llegar al modelo.
// El peso fuera de [5,200] NO es error: se clampa al calcular.
func Validate(p Profile, now time.Time) error {
	if p.BirthDate.IsZero() {
		return ErrBirthDateRequired
	}
	if p.BirthDate.After(now) {
		return ErrBirthDateInFuture
	}
	if ChronoYears(p.BirthDate, now) > MaxAgeYears {
		return ErrBirthDateTooOld
	}
	if math.IsNaN(p.AdultWeightLb) || math.IsInf(p.AdultWeightLb, 0) {
		return ErrInvalidWeight
	}
	return nil
}

// Compute calcula el AgeResult completo para un perfil.
func Compute(p Profile, now time.Time) (AgeResult, error) {
	if err := Validate(p, now); err != nil {
		return AgeResult{}, err
	}

	years := ChronoYears(p.BirthDate, now)
	whole := math.Floor(years)
	h := HumanEqYears(years, p.AdultWeightLb, p.UseSmoothing)
	next := NextMilestoneDate(p.BirthDate, now, h, p.AdultWeightLb, p.UseSmoothing)

	daysUntil := DaysBetween(now, next)
	if daysUntil < 0 {
		daysUntil = 0
	}

	return AgeResult{
		ChronoYears:           years,
		ChronoYearsInt:        int(whole),
		ChronoMonthsRemainder: int(math.Floor((years - whole) * 12)),
		HumanEqYears:          h,
		Slope:                 SlopeFromWeight(p.AdultWeightLb),
		UpcomingMilestone:     int(math.Floor(h)) + 1,
		NextMilestoneDate:     next,
		DaysUntilMilestone:    daysUntil,
	}, nil
}
