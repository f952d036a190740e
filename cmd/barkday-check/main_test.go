package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"barkday/internal/domain/reference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func validDataset(t *testing.T, dir string) {
	t.Helper()

	banded := map[string]any{
		"_copyright":  "Barkday",
		"_license":    "CC-BY",
		"_dataset_id": "reco-banded-v2",
	}
	for _, g := range reference.ExpectedGroups {
		bands := map[string]any{}
		for _, b := range reference.RequiredBands {
			lanes := map[string]any{}
			for _, l := range reference.Lanes {
				lanes[string(l)] = []string{g + " " + string(l)}
			}
			bands[b] = map[string]any{"lanes": lanes}
		}
		banded[g] = bands
	}
	writeJSON(t, filepath.Join(dir, "reco-banded.json"), banded)

	writeJSON(t, filepath.Join(dir, "reco-breed.json"), map[string]any{
		"breeds": map[string]any{
			"Beagle": map[string]any{"ages": map[string]any{
				"30": map[string]any{"lanes": map[string]any{"training": []string{"Scent games"}}},
			}},
		},
	})
	writeJSON(t, filepath.Join(dir, "breed_groups.json"), []map[string]any{{
		"id": "scent", "name": "Scent Hounds", "examples": []string{"Beagle"},
		"core_traits": []string{"Nose"}, "enrichment": []string{"Sniff walks"},
		"owner_tips": []string{"Long line"}, "notification_short": "Nose first.",
		"cautions": []string{"Ears"}, "gift_tags": []string{"snuffle"},
	}})
	writeJSON(t, filepath.Join(dir, "breed_aliases.json"), map[string]any{"Beagle": []string{"Beags"}})
	// nombre con sufijo, como los bajados desde el navegador
	writeJSON(t, filepath.Join(dir, "breed_taxonomy (2).json"), map[string]any{"Beagle": map[string]any{"clusters": []string{"scent"}}})
}

func TestRunCheck_AllValid(t *testing.T) {
	dir := t.TempDir()
	validDataset(t, dir)

	var out, errOut bytes.Buffer
	ok := runCheck(&out, &errOut, checkOptions{Dir: dir})

	assert.True(t, ok, errOut.String())
	assert.Contains(t, out.String(), "All checks passed.")
	assert.Contains(t, out.String(), "breed_taxonomy (2).json")
	assert.Empty(t, errOut.String())
}

func TestRunCheck_ReportsProblems(t *testing.T) {
	dir := t.TempDir()
	validDataset(t, dir)
	writeJSON(t, filepath.Join(dir, "reco-banded.json"), map[string]any{"Hound": map[string]any{}})
	require.NoError(t, os.Remove(filepath.Join(dir, "breed_aliases.json")))

	var out, errOut bytes.Buffer
	ok := runCheck(&out, &errOut, checkOptions{Dir: dir})

	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "✖ reco-banded")
	assert.Contains(t, errOut.String(), "missing expected groups")
	assert.Contains(t, errOut.String(), "✖ breed_aliases")
	assert.Contains(t, errOut.String(), "Validation failed")
}

func TestRootCommand_ExplicitPathAndExitError(t *testing.T) {
	dir := t.TempDir()
	validDataset(t, dir)
	bad := filepath.Join(t.TempDir(), "groups.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id":"x"}]`), 0o644))

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--dir", dir, "--groups", bad})

	err := cmd.Execute()
	assert.ErrorIs(t, err, errValidation)
	assert.Contains(t, errOut.String(), "✖ breed_groups")

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--dir", dir})
	assert.NoError(t, cmd.Execute())
}
