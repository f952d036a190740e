package reference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifica cada archivo de referencia.
type Kind string

const (
	KindAliases    Kind = "breed_aliases"
	KindGroups     Kind = "breed_groups"
	KindRecoBanded Kind = "reco-banded"
	KindRecoBreed  Kind = "reco-breed"
	KindTaxonomy   Kind = "breed_taxonomy"
)

// Kinds en el orden en que se cargan y validan.
var Kinds = []Kind{KindRecoBanded, KindRecoBreed, KindGroups, KindAliases, KindTaxonomy}

func (k Kind) FileName() string { return string(k) + ".json" }

// Los decoders son tolerantes: un documento ilegible es error (el loader lo trata
// como tabla vacía), pero una entrada mal formada dentro de un documento válido
// solo se descarta.

// DecodeAliases acepta {canonical: [aliases]} y también {alias: "canonical"}.
func DecodeAliases(b []byte) (Aliases, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("breed_aliases: %w", err)
	}

	out := Aliases{}
	for k, v := range raw {
		k = strings.TrimSpace(k)
		if k == "" || strings.HasPrefix(k, "_") {
			continue
		}

		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			out[k] = append(out[k], list...)
			continue
		}

		var canon string
		if err := json.Unmarshal(v, &canon); err == nil && strings.TrimSpace(canon) != "" {
			canon = strings.TrimSpace(canon)
			out[canon] = append(out[canon], k)
		}
	}
	return out, nil
}

func DecodeGroups(b []byte) ([]BreedGroup, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("breed_groups: %w", err)
	}

	out := make([]BreedGroup, 0, len(raw))
	for _, item := range raw {
		var g BreedGroup
		if err := json.Unmarshal(item, &g); err != nil {
			continue
		}
		if strings.TrimSpace(g.Name) == "" && strings.TrimSpace(g.ID) == "" {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// DecodeBanded ignora las claves de metadata que empiezan con "_".
func DecodeBanded(b []byte) (BandedPlans, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("reco-banded: %w", err)
	}

	out := BandedPlans{}
	for group, v := range raw {
		if strings.HasPrefix(group, "_") {
			continue
		}
		bands := decodeEntries(v)
		if bands == nil {
			continue
		}
		out[group] = bands
	}
	return out, nil
}

// DecodeBreedPlans acepta el mapa directo o envuelto en {"breeds": {...}}.
func DecodeBreedPlans(b []byte) (BreedPlans, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("reco-breed: %w", err)
	}
	if wrapped, ok := raw["breeds"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &inner); err == nil {
			raw = inner
		}
	}

	out := BreedPlans{}
	for breed, v := range raw {
		if strings.HasPrefix(breed, "_") {
			continue
		}
		var node struct {
			Ages json.RawMessage `json:"ages"`
		}
		if err := json.Unmarshal(v, &node); err != nil || len(node.Ages) == 0 {
			continue
		}
		ages := decodeEntries(node.Ages)
		if ages == nil {
			continue
		}
		out[breed] = BreedPlan{Ages: ages}
	}
	return out, nil
}

func DecodeTaxonomy(b []byte) (Taxonomy, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("breed_taxonomy: %w", err)
	}

	out := Taxonomy{}
	for breed, v := range raw {
		if strings.HasPrefix(breed, "_") {
			continue
		}
		var e TaxonomyEntry
		if err := json.Unmarshal(v, &e); err != nil {
			continue
		}
		out[breed] = e
	}
	return out, nil
}

// decodeEntries decodifica {key: {lanes:{...}}}; lanes con tipo incorrecto quedan vacías.
func decodeEntries(b []byte) map[string]PlanEntry {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}

	out := make(map[string]PlanEntry, len(raw))
	for key, v := range raw {
		var node struct {
			Lanes map[string]json.RawMessage `json:"lanes"`
		}
		if err := json.Unmarshal(v, &node); err != nil {
			continue
		}
		if node.Lanes == nil {
			out[key] = PlanEntry{}
			continue
		}

		ls := &LaneSet{}
		for _, lane := range Lanes {
			var items []string
			if rawLane, ok := node.Lanes[string(lane)]; ok {
				_ = json.Unmarshal(rawLane, &items)
			}
			ls.Set(lane, cleanItems(items))
		}
		out[key] = PlanEntry{Lanes: ls}
	}
	return out
}

func cleanItems(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Decode arma Tables a partir de los documentos crudos por Kind.
// Devuelve también los errores por archivo (para loguear), nunca falla completo.
func Decode(docs map[Kind][]byte) (Tables, map[Kind]error) {
	var t Tables
	errs := map[Kind]error{}

	for _, k := range Kinds {
		b, ok := docs[k]
		if !ok || len(b) == 0 {
			continue
		}
		var err error
		switch k {
		case KindAliases:
			t.Aliases, err = DecodeAliases(b)
		case KindGroups:
			t.Groups, err = DecodeGroups(b)
		case KindRecoBanded:
			t.Banded, err = DecodeBanded(b)
		case KindRecoBreed:
			t.Breeds, err = DecodeBreedPlans(b)
		case KindTaxonomy:
			t.Taxonomy, err = DecodeTaxonomy(b)
		}
		if err != nil {
			errs[k] = err
		}
	}
	return t, errs
}
