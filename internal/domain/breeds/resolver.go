package breeds

import (
	"strings"

	"barkday/internal/domain/reference"
)

// NormalizeBreed resuelve texto libre a una breed canónica.
// Orden: clave canónica exacta, después alias exacto (ambos case-insensitive, trim).
// No hay matching parcial ni por prefijo: antes mapeaba razas al grupo equivocado.
// Si no hay match devuelve ("", false); el caller decide si usa el texto original.
func NormalizeBreed(ref *reference.ReferenceData, input string) (string, bool) {
	q := strings.TrimSpace(input)
	if q == "" || ref == nil {
		return "", false
	}
	if c, ok := ref.Canonical(q); ok {
		return c, true
	}
	if c, ok := ref.AliasTarget(q); ok {
		return c, true
	}
	return "", false
}

// FindGroupByBreedName busca la entrada de breed_groups cuyo examples contiene la breed.
// Cada example también pasa por NormalizeBreed antes de comparar.
func FindGroupByBreedName(ref *reference.ReferenceData, breedText string) (reference.BreedGroup, bool) {
	canonical, ok := NormalizeBreed(ref, breedText)
	if !ok {
		return reference.BreedGroup{}, false
	}
	want := strings.ToLower(canonical)

	for _, g := range ref.Groups() {
		for _, ex := range g.Examples {
			name, ok := NormalizeBreed(ref, ex)
			if !ok {
				name = strings.TrimSpace(ex)
			}
			if strings.ToLower(name) == want {
				return g, true
			}
		}
	}
	return reference.BreedGroup{}, false
}
