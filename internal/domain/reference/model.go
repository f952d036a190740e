package reference

// Lane es una de las seis categorías fijas de recomendaciones.
type Lane string

const (
	LaneTraining  Lane = "training"
	LaneHealth    Lane = "health"
	LaneNutrition Lane = "nutrition"
	LaneExercise  Lane = "exercise"
	LaneBonding   Lane = "bonding"
	LaneGear      Lane = "gear"
)

// Lanes en el orden en que se presentan siempre.
var Lanes = []Lane{LaneTraining, LaneHealth, LaneNutrition, LaneExercise, LaneBonding, LaneGear}

// LaneSet tiene las seis lanes como campos: si existe, están todas.
// El orden de los campos es el orden de serialización.
type LaneSet struct {
	Training  []string `json:"training"`
	Health    []string `json:"health"`
	Nutrition []string `json:"nutrition"`
	Exercise  []string `json:"exercise"`
	Bonding   []string `json:"bonding"`
	Gear      []string `json:"gear"`
}

func (l *LaneSet) ptr(lane Lane) *[]string {
	switch lane {
	case LaneTraining:
		return &l.Training
	case LaneHealth:
		return &l.Health
	case LaneNutrition:
		return &l.Nutrition
	case LaneExercise:
		return &l.Exercise
	case LaneBonding:
		return &l.Bonding
	case LaneGear:
		return &l.Gear
	default:
		return nil
	}
}

// Get devuelve los items de una lane (nil si la lane no existe).
func (l LaneSet) Get(lane Lane) []string {
	if p := l.ptr(lane); p != nil {
		return *p
	}
	return nil
}

// Set reemplaza los items de una lane. Lanes desconocidas se ignoran.
func (l *LaneSet) Set(lane Lane, items []string) {
	if p := l.ptr(lane); p != nil {
		*p = items
	}
}

// IsEmpty es true si ninguna lane tiene items.
func (l LaneSet) IsEmpty() bool {
	for _, lane := range Lanes {
		if len(l.Get(lane)) > 0 {
			return false
		}
	}
	return true
}

// Clone copia profundo, con slices no-nil (así se serializa [] y no null).
func (l LaneSet) Clone() LaneSet {
	var out LaneSet
	for _, lane := range Lanes {
		src := l.Get(lane)
		dst := make([]string, len(src))
		copy(dst, src)
		out.Set(lane, dst)
	}
	return out
}

// PlanEntry es el nodo {lanes:{...}} de reco-banded y reco-breed.
type PlanEntry struct {
	Lanes *LaneSet `json:"lanes"`
}

// BandedPlans: grupo -> band key -> entry.
type BandedPlans map[string]map[string]PlanEntry

// BreedPlan: edad en dog-years (string) -> entry.
type BreedPlan struct {
	Ages map[string]PlanEntry `json:"ages"`
}

type BreedPlans map[string]BreedPlan

// BreedGroup es una entrada de breed_groups.json.
type BreedGroup struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Examples          []string `json:"examples"`
	CoreTraits        []string `json:"core_traits"`
	Enrichment        []string `json:"enrichment"`
	OwnerTips         []string `json:"owner_tips"`
	NotificationShort string   `json:"notification_short"`
	Cautions          []string `json:"cautions"`
	GiftTags          []string `json:"gift_tags"`
}

type TaxonomyEntry struct {
	Clusters []string `json:"clusters"`
}

type Taxonomy map[string]TaxonomyEntry

// Aliases: breed canónica -> aliases.
type Aliases map[string][]string

// Tables agrupa las tablas crudas tal como las entrega el loader.
// Cualquiera puede venir vacía.
type Tables struct {
	Aliases  Aliases
	Groups   []BreedGroup
	Banded   BandedPlans
	Breeds   BreedPlans
	Taxonomy Taxonomy
}
