package breeds

import (
	"testing"

	"barkday/internal/domain/reference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRef() *reference.ReferenceData {
	return reference.New(reference.Tables{
		Aliases: reference.Aliases{
			"Yorkshire Terrier":   {"Yorkie", "Yorkshire"},
			"Labrador Retriever":  {"Lab", "Labrador"},
			"Australian Shepherd": {"Aussie"},
			"Border Collie":       {},
		},
		Groups: []reference.BreedGroup{
			{ID: "herding", Name: "Herding / Working / Drive", Examples: []string{"Border Collie", "Aussie"}},
			{ID: "sporting", Name: "Sporting / Gun Dogs", Examples: []string{"Labrador"}},
			{ID: "toy", Name: "Toy / Companion Small", Examples: []string{"Yorkie", "Pug"}},
		},
	})
}

func TestNormalizeBreed(t *testing.T) {
	ref := testRef()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Yorkie", "Yorkshire Terrier", true},
		{"  yorkie ", "Yorkshire Terrier", true},
		{"YORKSHIRE TERRIER", "Yorkshire Terrier", true},
		{"Border Collie", "Border Collie", true},
		{"xyz", "", false},
		{"", "", false},
		// nada de prefijos ni substrings
		{"Yor", "", false},
		{"Labrador Retriever Mix", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeBreed(ref, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, ok := NormalizeBreed(nil, "Yorkie")
	assert.False(t, ok)
}

func TestFindGroupByBreedName(t *testing.T) {
	ref := testRef()

	g, ok := FindGroupByBreedName(ref, "Lab")
	require.True(t, ok)
	assert.Equal(t, "sporting", g.ID)

	// el example "Aussie" se normaliza antes de comparar
	g, ok = FindGroupByBreedName(ref, "Australian Shepherd")
	require.True(t, ok)
	assert.Equal(t, "herding", g.ID)

	g, ok = FindGroupByBreedName(ref, "yorkshire")
	require.True(t, ok)
	assert.Equal(t, "toy", g.ID)

	_, ok = FindGroupByBreedName(ref, "Pug") // no resuelve
	assert.False(t, ok)

	_, ok = FindGroupByBreedName(ref, "xyz")
	assert.False(t, ok)
}

func TestResolveGroupKey(t *testing.T) {
	cases := map[string]GroupKey{
		"Sporting / Gun Dogs":       GroupSporting,
		"Herding / Working / Drive": GroupWorkingHerding,
		"":                          GroupMixedOther,
		"   ":                       GroupMixedOther,
		"Working / Herding":         GroupWorkingHerding,
		"working/herding":           GroupWorkingHerding,
		"Non-Sporting":              GroupNonSporting,
		"Non Sporting Group":        GroupNonSporting,
		"Toy / Companion Small":     GroupToy,
		"Terriers":                  GroupTerrier,
		"Scent Hound":               GroupHound,
		"Sport":                     GroupSporting,
		"Herding":                   GroupWorkingHerding,
		"Livestock Guardian":        GroupGuardian,
		"Mixed / Other":             GroupMixedOther,
		"Something Else Entirely":   GroupMixedOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, ResolveGroupKey(in), in)
	}
}

func TestResolveGroupKey_ShortFragments(t *testing.T) {
	// input dentro de la clave solo desde 4 letras
	cases := map[string]GroupKey{
		"to":    GroupMixedOther,
		"or":    GroupMixedOther,
		"g":     GroupMixedOther,
		"hou":   GroupMixedOther,
		"Toy":   GroupToy,
		"hound": GroupHound,
		"terr":  GroupTerrier,
		"guard": GroupGuardian,
	}
	for in, want := range cases {
		assert.Equal(t, want, ResolveGroupKey(in), in)
	}
}

func TestResolveGroupKey_AlwaysInEnum(t *testing.T) {
	valid := map[GroupKey]bool{}
	for _, k := range GroupKeys {
		valid[k] = true
	}
	for _, in := range []string{"??", "123", "a", "Toy!!", "🐶", "Working-Herding-Guardian"} {
		assert.True(t, valid[ResolveGroupKey(in)], in)
	}
}

func TestMeta(t *testing.T) {
	m := Meta(GroupToy)
	assert.Equal(t, GroupToy, m.Key)
	assert.Contains(t, m.Examples, "Yorkie")
	assert.NotEmpty(t, m.Notes)

	unknown := Meta(GroupKey("Nope"))
	assert.Equal(t, GroupMixedOther, unknown.Key)

	// copias: modificar no afecta la tabla
	m.Examples[0] = "changed"
	assert.NotEqual(t, "changed", Meta(GroupToy).Examples[0])

	all := AllMeta()
	require.Len(t, all, len(GroupKeys))
	assert.Equal(t, GroupWorkingHerding, all[0].Key)
}

func TestSizeWarning(t *testing.T) {
	assert.Contains(t, SizeWarning("Toy", 35), "weight > 30")
	assert.Empty(t, SizeWarning("Toy", 8))
	assert.Contains(t, SizeWarning("Guardian", 15), "weight < 20")
	assert.Contains(t, SizeWarning("Working / Herding", 12), "weight < 20")
	assert.Empty(t, SizeWarning("Working / Herding", 45))
	assert.Empty(t, SizeWarning("Hound", 100))
}
