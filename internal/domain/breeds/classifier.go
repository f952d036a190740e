package breeds

import (
	"sort"
	"strings"
	"unicode"
)

// GroupKey es uno de los grupos que muestra la UI.
type GroupKey string

const (
	GroupWorkingHerding GroupKey = "Working / Herding"
	GroupSporting       GroupKey = "Sporting"
	GroupHound          GroupKey = "Hound"
	GroupTerrier        GroupKey = "Terrier"
	GroupToy            GroupKey = "Toy"
	GroupNonSporting    GroupKey = "Non-Sporting"
	GroupGuardian       GroupKey = "Guardian"
	GroupCompanion      GroupKey = "Companion"
	GroupMixedOther     GroupKey = "Mixed / Other"
)

var GroupKeys = []GroupKey{
	GroupWorkingHerding, GroupSporting, GroupHound, GroupTerrier, GroupToy,
	GroupNonSporting, GroupGuardian, GroupCompanion, GroupMixedOther,
}

// DefaultGroup es el catch-all.
const DefaultGroup = GroupMixedOther

// largo mínimo del input para probar "input contenido en la clave"
const minReverseMatch = 4

// ResolveGroupKey mapea una etiqueta de grupo libre ("Sporting / Gun Dogs",
// "Herding / Working / Drive") a un GroupKey. Es total: nunca falla y ante la duda
// devuelve Mixed / Other.
//
//  1. igualdad de letras (sin puntuación, lower-case)
//  2. contención: la clave dentro del input (gana la que aparece primero y, a igual
//     posición, la más larga), o el input dentro de la clave (gana la más corta)
//  3. bolsa de tokens: mismos tokens en cualquier orden, o todos los tokens de la
//     clave presentes en el input (gana la de más tokens)
func ResolveGroupKey(label string) GroupKey {
	in := letters(label)
	if in == "" {
		return DefaultGroup
	}

	for _, k := range GroupKeys {
		if letters(string(k)) == in {
			return k
		}
	}

	var best GroupKey
	bestAt, bestLen := -1, 0
	for _, k := range GroupKeys {
		ck := letters(string(k))
		at := strings.Index(in, ck)
		if at < 0 {
			continue
		}
		if bestAt < 0 || at < bestAt || (at == bestAt && len(ck) > bestLen) {
			best, bestAt, bestLen = k, at, len(ck)
		}
	}
	if best != "" {
		return best
	}

	if len(in) >= minReverseMatch {
		bestLen = 0
		for _, k := range GroupKeys {
			ck := letters(string(k))
			if strings.Contains(ck, in) && (bestLen == 0 || len(ck) < bestLen) {
				best, bestLen = k, len(ck)
			}
		}
		if best != "" {
			return best
		}
	}

	inTokens := tokens(label)
	bag := strings.Join(inTokens, "")
	for _, k := range GroupKeys {
		if strings.Join(tokens(string(k)), "") == bag {
			return k
		}
	}

	have := make(map[string]struct{}, len(inTokens))
	for _, t := range inTokens {
		have[t] = struct{}{}
	}
	bestCount := 0
	for _, k := range GroupKeys {
		kt := tokens(string(k))
		if len(kt) <= bestCount || !containsAll(have, kt) {
			continue
		}
		best, bestCount = k, len(kt)
	}
	if best != "" {
		return best
	}

	return DefaultGroup
}

// letters deja solo letras, en minúscula.
func letters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// tokens separa por cualquier no-letra y ordena.
func tokens(s string) []string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !unicode.IsLetter(r) })
	sort.Strings(parts)
	return parts
}

func containsAll(have map[string]struct{}, want []string) bool {
	for _, w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}
