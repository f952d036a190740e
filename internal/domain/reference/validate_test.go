package reference

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBandedDoc(t *testing.T) map[string]any {
	t.Helper()

	doc := map[string]any{
		"_copyright":  "Barkday",
		"_license":    "CC-BY",
		"_dataset_id": "reco-banded-v2",
	}
	for _, g := range ExpectedGroups {
		bands := map[string]any{}
		for _, b := range RequiredBands {
			lanes := map[string]any{}
			for _, l := range Lanes {
				lanes[string(l)] = []string{g + " " + b + " " + string(l)}
			}
			bands[b] = map[string]any{"lanes": lanes}
		}
		doc[g] = bands
	}
	return doc
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestValidate_RecoBanded_OK(t *testing.T) {
	issues := Validate(KindRecoBanded, mustJSON(t, validBandedDoc(t)))
	assert.Empty(t, issues)
}

func TestValidate_RecoBanded_ReportsMissingPieces(t *testing.T) {
	doc := validBandedDoc(t)
	delete(doc, "_license")
	delete(doc, "Toy")
	delete(doc["Hound"].(map[string]any), "senior_61p")
	doc["Terrier"].(map[string]any)["adult_25_60"] = map[string]any{
		"lanes": map[string]any{
			"training": []string{}, "health": []string{"x"}, "nutrition": []string{"x"},
			"exercise": []string{"x"}, "bonding": []string{"x"}, "gear": []string{"x"},
		},
	}

	issues := Validate(KindRecoBanded, mustJSON(t, doc))
	require.NotEmpty(t, issues)

	joined := make([]string, 0, len(issues))
	for _, i := range issues {
		joined = append(joined, i.String())
	}
	all := strings.Join(joined, "\n")

	assert.Contains(t, all, "_license")
	assert.Contains(t, all, "missing expected groups: Toy")
	assert.Contains(t, all, "senior_61p")
	assert.Contains(t, all, "/Terrier/adult_25_60/lanes/training")
}

func TestValidate_Groups_Duplicates(t *testing.T) {
	g := map[string]any{
		"id": "herding", "name": "Herding", "examples": []string{"Border Collie"},
		"core_traits": []string{"drive"}, "enrichment": []string{"herding balls"},
		"owner_tips": []string{"give jobs"}, "notification_short": "Jobs!",
		"cautions": []string{"boredom"}, "gift_tags": []string{"puzzle"},
	}
	issues := Validate(KindGroups, mustJSON(t, []any{g, g}))

	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, `duplicate id "herding"`)
	assert.Contains(t, issues[1].Message, `duplicate name "Herding"`)
}

func TestValidate_Groups_MissingFields(t *testing.T) {
	issues := Validate(KindGroups, []byte(`[{"id":"x","name":"X"}]`))
	require.NotEmpty(t, issues)
	assert.Equal(t, "/0", issues[0].Path)
}

func TestValidate_AliasesAndTaxonomy(t *testing.T) {
	assert.Empty(t, Validate(KindAliases, []byte(`{"Yorkshire Terrier":["Yorkie"],"frenchie":"French Bulldog"}`)))
	assert.NotEmpty(t, Validate(KindAliases, []byte(`{"Beagle":[]}`)))

	assert.Empty(t, Validate(KindTaxonomy, []byte(`{"Beagle":{"clusters":["scent"]}}`)))
	assert.NotEmpty(t, Validate(KindTaxonomy, []byte(`{}`)))
	assert.NotEmpty(t, Validate(KindTaxonomy, []byte(`{"Beagle":null}`)))
}

func TestValidate_RecoBreed(t *testing.T) {
	assert.Empty(t, Validate(KindRecoBreed, []byte(`{"Beagle":{"ages":{"30":{"lanes":{"training":["x"]}}}}}`)))
	assert.NotEmpty(t, Validate(KindRecoBreed, []byte(`{"Beagle":{"ages":{"thirty":{"lanes":{}}}}}`)))
	assert.NotEmpty(t, Validate(KindRecoBreed, []byte(`{"Beagle":{}}`)))
	assert.Empty(t, Validate(KindRecoBreed, []byte(`{"breeds":{"Beagle":{"ages":{"30":{"lanes":{"training":["x"]}}}}}}`)))
	assert.NotEmpty(t, Validate(KindRecoBreed, []byte(`{"breeds":{"Beagle":{}}}`)))
}

func TestValidate_InvalidJSON(t *testing.T) {
	issues := Validate(KindAliases, []byte(`{`))
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "invalid json")
}
