package plans

import (
	"encoding/json"
	"testing"

	"barkday/internal/domain/breeds"
	"barkday/internal/domain/reference"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *reference.ReferenceData {
	return reference.New(reference.Tables{
		Aliases: reference.Aliases{
			"Beagle":             {"Beags"},
			"Labrador Retriever": {"Lab"},
			"Pug":                {},
		},
		Groups: []reference.BreedGroup{
			{ID: "scent", Name: "Scent Hounds", Enrichment: []string{"Sniff walks"}, Cautions: []string{"Ear checks"}},
			{ID: "food", Name: "Food Motivated", Enrichment: []string{"sniff walks "}, Cautions: []string{"Measure meals"}},
			{ID: "vocal", Name: "Vocal", OwnerTips: []string{"Quiet cue"}},
			{ID: "extra", Name: "Extra", Enrichment: []string{"Never added"}},
		},
		Banded: reference.BandedPlans{
			"Hound": {
				"adult_25_60": {Lanes: &reference.LaneSet{
					Health: []string{"Annual vet visit"},
					Gear:   []string{"Long line"},
				}},
			},
			"Sporting": {
				"adult_25_60": {Lanes: &reference.LaneSet{Training: []string{"Retrieve games"}}},
			},
			"Foundation Stock": {
				"adult_25_60": {Lanes: &reference.LaneSet{Exercise: []string{"Walks"}}},
			},
		},
		Breeds: reference.BreedPlans{
			"Beagle": {Ages: map[string]reference.PlanEntry{
				"30": {Lanes: &reference.LaneSet{Training: []string{"Scent games"}}},
			}},
			"Pug": {Ages: map[string]reference.PlanEntry{
				"30": {Lanes: &reference.LaneSet{}},
			}},
		},
		Taxonomy: reference.Taxonomy{
			"Beagle": {Clusters: []string{"scent", "missing", "food", "vocal", "extra"}},
		},
	})
}

func TestResolve_FillWithoutOverride(t *testing.T) {
	ref := reference.New(reference.Tables{
		Aliases: reference.Aliases{"Beagle": {}},
		Banded: reference.BandedPlans{"Hound": {"adult_25_60": {Lanes: &reference.LaneSet{
			Training: []string{"Group training"},
			Health:   []string{"Annual vet visit"},
			Gear:     []string{"Long line"},
		}}}},
		Breeds: reference.BreedPlans{"Beagle": {Ages: map[string]reference.PlanEntry{
			"30": {Lanes: &reference.LaneSet{Training: []string{"Scent games"}}},
		}}},
	})

	res := Resolve(ref, "Hound", "Beagle", 30)

	want := reference.LaneSet{
		Training:  []string{"Scent games"},
		Health:    []string{"Annual vet visit"},
		Nutrition: []string{},
		Exercise:  []string{},
		Bonding:   []string{},
		Gear:      []string{"Long line"},
	}
	if diff := cmp.Diff(want, res.Plan.LaneSet); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, SourceBreed, res.Source)
	assert.Equal(t, "adult_25_60", res.Band.Key)
	assert.Equal(t, 30, res.BreedAge)
	assert.Equal(t, "Beagle", res.CanonicalBreed)
}

func TestResolve_OverlayCapAndDedupe(t *testing.T) {
	res := Resolve(fixture(), "Hound", "beags", 30.2)
	require.Equal(t, SourceBreed, res.Source)

	// scent -> enrichment; food -> enrichment duplicado, cae en caution; vocal -> owner tip.
	// extra no entra por el tope.
	assert.Equal(t, 3, res.OverlayAdded)
	assert.Equal(t, []string{"Scent games", "Sniff walks"}, res.Plan.Training)
	assert.Equal(t, []string{"Annual vet visit", "Measure meals"}, res.Plan.Health)
	assert.Equal(t, []string{"Quiet cue"}, res.Plan.Bonding)
	assert.NotContains(t, res.Plan.Training, "Never added")
}

func TestResolve_OverlaySkipsExistingContent(t *testing.T) {
	ref := reference.New(reference.Tables{
		Aliases: reference.Aliases{"Beagle": {}},
		Groups:  []reference.BreedGroup{{ID: "scent", Enrichment: []string{"  SCENT GAMES "}}},
		Breeds: reference.BreedPlans{"Beagle": {Ages: map[string]reference.PlanEntry{
			"30": {Lanes: &reference.LaneSet{Training: []string{"Scent games"}}},
		}}},
		Taxonomy: reference.Taxonomy{"Beagle": {Clusters: []string{"scent"}}},
	})

	res := Resolve(ref, "", "Beagle", 30)
	assert.Equal(t, 0, res.OverlayAdded)
	assert.Equal(t, []string{"Scent games"}, res.Plan.Training)
}

func TestResolve_GroupFallback(t *testing.T) {
	// Pug tiene entrada pero sin items: no es primaria
	res := Resolve(fixture(), "Sporting / Gun Dogs", "Pug", 40)
	assert.Equal(t, SourceGroup, res.Source)
	assert.Equal(t, breeds.GroupSporting, res.GroupKey)
	assert.Equal(t, []string{"Retrieve games"}, res.Plan.Training)
	assert.NotNil(t, res.Plan.Health)

	// etiqueta que no es de UI pero existe en reco-banded
	res = Resolve(fixture(), "Foundation Stock", "", 40)
	assert.Equal(t, SourceGroup, res.Source)
	assert.Equal(t, []string{"Walks"}, res.Plan.Exercise)
}

func TestResolve_NoData(t *testing.T) {
	res := Resolve(reference.Empty(), "Hound", "Beagle", 12)
	assert.Equal(t, SourceNone, res.Source)
	assert.Equal(t, "puppy_11_15", res.Band.Key)
	assert.True(t, res.Plan.IsEmpty())

	// lanes vacías, nunca null
	b, err := json.Marshal(res.Plan)
	require.NoError(t, err)
	assert.JSONEq(t, `{"training":[],"health":[],"nutrition":[],"exercise":[],"bonding":[],"gear":[]}`, string(b))

	res = Resolve(nil, "", "", 0)
	assert.Equal(t, SourceNone, res.Source)
	assert.Equal(t, breeds.GroupMixedOther, res.GroupKey)
}

func TestResolve_DoesNotMutateReference(t *testing.T) {
	ref := fixture()
	_ = Resolve(ref, "Hound", "Beagle", 30)
	_ = Resolve(ref, "Hound", "Beagle", 30)

	bp, ok := ref.BreedPlan("Beagle")
	require.True(t, ok)
	assert.Equal(t, []string{"Scent games"}, bp.Ages["30"].Lanes.Training)

	ls, ok := ref.Banded("Hound", "adult_25_60")
	require.True(t, ok)
	assert.Equal(t, []string{"Annual vet visit"}, ls.Health)
}

func TestPlan_Ordered(t *testing.T) {
	p := Plan{LaneSet: reference.LaneSet{Gear: []string{"Harness"}}.Clone()}
	got := p.Ordered()
	require.Len(t, got, 6)

	lanes := make([]reference.Lane, 0, len(got))
	for _, li := range got {
		lanes = append(lanes, li.Lane)
	}
	if diff := cmp.Diff(reference.Lanes, lanes); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Harness"}, got[5].Items, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("gear mismatch:\n%s", diff)
	}
}
