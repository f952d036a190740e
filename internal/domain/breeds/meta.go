package breeds

import (
	"fmt"
	"strings"
)

// GroupMeta es la ficha corta de cada grupo de UI.
type GroupMeta struct {
	Key         GroupKey `json:"key"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Notes       []string `json:"notes"`
}

var groupMeta = map[GroupKey]GroupMeta{
	GroupWorkingHerding: {
		Description: "High-drive problem solvers; thrive on jobs.",
		Examples:    []string{"Border Collie", "Australian Shepherd", "German Shepherd", "Belgian Malinois", "Corgi"},
		Notes: []string{
			"Daily jobs/puzzles (herding games, scentwork).",
			"Mental as important as physical; enrichment.",
			"Prevent under-stimulation → boredom.",
		},
	},
	GroupSporting: {
		Description: "Endurance & retrieving; water-confident.",
		Examples:    []string{"Labrador", "Golden Retriever", "Vizsla", "GSP", "Setter"},
		Notes:       []string{"Structured fetch/dock/field games.", "Watch weight; measured meals."},
	},
	GroupHound: {
		Description: "Scent/sight specialists; independent.",
		Examples:    []string{"Beagle", "Dachshund", "Greyhound", "Foxhound", "Basset"},
		Notes:       []string{"Scent walks on long line; recall with high-value rewards."},
	},
	GroupTerrier: {
		Description: "Tenacious hunters; love dig/chase.",
		Examples:    []string{"JRT", "Westie", "Airedale", "Border Terrier"},
		Notes:       []string{"Dig boxes, flirt poles, controlled tug."},
	},
	GroupToy: {
		Description: "Small frames; fragile joints.",
		Examples:    []string{"Chihuahua", "Pomeranian", "Yorkie", "Maltese", "Papillon"},
		Notes:       []string{"Low-impact play; dental care; temperature care."},
	},
	GroupNonSporting: {
		Description: "Mixed roles; varied needs.",
		Examples:    []string{"Bulldog", "Dalmatian", "Poodle (Std)", "Boston Terrier"},
		Notes:       []string{"Tailor enrichment to individual needs."},
	},
	GroupGuardian: {
		Description: "Large/giant protectors.",
		Examples:    []string{"Rottweiler", "Mastiff", "Great Dane", "Anatolian", "Kuvasz"},
		Notes:       []string{"Impulse control & neutrality; joint support."},
	},
	GroupCompanion: {
		Description: "Human-bonded routines.",
		Examples:    []string{"Cavapoo", "Cockapoo", "Shih Tzu", "Havanese"},
		Notes:       []string{"Reinforce calm independence; routines."},
	},
	GroupMixedOther: {
		Description: "Profile by drive & size.",
		Examples:    []string{"Mixed-breed", "Rescue", "Unknown"},
		Notes:       []string{"Profile by observed drive (retrieve, scent, herd)."},
	},
}

// Meta devuelve la ficha del grupo. Claves desconocidas caen en Mixed / Other.
func Meta(k GroupKey) GroupMeta {
	m, ok := groupMeta[k]
	if !ok {
		k = DefaultGroup
		m = groupMeta[k]
	}
	m.Key = k
	m.Examples = append([]string(nil), m.Examples...)
	m.Notes = append([]string(nil), m.Notes...)
	return m
}

// AllMeta en el orden de GroupKeys.
func AllMeta() []GroupMeta {
	out := make([]GroupMeta, 0, len(GroupKeys))
	for _, k := range GroupKeys {
		out = append(out, Meta(k))
	}
	return out
}

// SizeWarning avisa cuando el peso no encaja con el grupo elegido.
// Es solo informativo: la curva sigue usando el peso.
func SizeWarning(groupLabel string, adultWeightLb float64) string {
	switch {
	case strings.Contains(groupLabel, "Toy") && adultWeightLb > 30:
		return fmt.Sprintf("Breed group %q but weight > 30 lb. Math stays weight-based.", "Toy")
	case (strings.Contains(groupLabel, "Guardian") || strings.Contains(groupLabel, "Working")) && adultWeightLb < 20:
		return "Breed group suggests large/giant, but weight < 20 lb. Math stays weight-based."
	default:
		return ""
	}
}
