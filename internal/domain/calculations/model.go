package calculations

import (
	"time"

	"barkday/internal/domain/agemodel"
	"barkday/internal/domain/breeds"
	"barkday/internal/domain/plans"
)

// Input es lo que manda el usuario para un cálculo.
type Input struct {
	Profile agemodel.Profile `json:"profile"`

	// Cuántos cumpleaños futuros listar además del próximo (0 = ninguno).
	SeriesCount int `json:"series_count"`
	// Nota de la curva epigenética (solo texto, no cambia la matemática).
	ShowEpigenetic bool `json:"show_epigenetic"`
}

// MappedGroup es la entrada de breed_groups que contiene la raza, si la hay.
type MappedGroup struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	CoreTraits        []string `json:"core_traits,omitempty"`
	NotificationShort string   `json:"notification_short,omitempty"`
	GiftTags          []string `json:"gift_tags,omitempty"`
}

// Calculation es el resultado completo: edad, raza/grupo resueltos y plan.
type Calculation struct {
	Age        agemodel.AgeResult   `json:"age"`
	Milestones []agemodel.Milestone `json:"milestones,omitempty"`

	DisplayName    string       `json:"display_name"`
	Headline       string       `json:"headline"`
	CanonicalBreed string       `json:"canonical_breed,omitempty"`
	MappedGroup    *MappedGroup `json:"mapped_group,omitempty"`

	// GroupLabel es el grupo efectivo: el del breed mapeado si existe, si no el elegido.
	GroupLabel  string           `json:"group_label"`
	GroupKey    breeds.GroupKey  `json:"group_key"`
	GroupMeta   breeds.GroupMeta `json:"group_meta"`
	ProfileLine string           `json:"profile_line"`
	SizeWarning string           `json:"size_warning,omitempty"`
	Epigenetic  string           `json:"epigenetic_note,omitempty"`

	Plan plans.Resolution `json:"plan"`

	ComputedAt time.Time `json:"computed_at"`
}

// Run es un cálculo guardado por un usuario.
type Run struct {
	ID          string
	OwnerUserID string

	Name string

	Input  Input
	Result Calculation

	CreatedAt time.Time
}
