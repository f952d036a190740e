package reference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Bandas y lanes que todo grupo de reco-banded debe traer.
var RequiredBands = []string{"puppy_1_6", "puppy_7_10", "puppy_11_15", "young_16_24", "adult_25_60", "senior_61p"}

var MetaKeys = []string{"_copyright", "_license", "_dataset_id"}

// ExpectedGroups son los grupos que la suite espera en reco-banded.
var ExpectedGroups = []string{
	"Working / Herding", "Sporting", "Hound", "Terrier", "Toy", "Non-Sporting",
	"Foundation Stock", "Miscellaneous", "Guardian", "Companion", "Mixed / Other",
}

// Issue es un problema de validación. Para el core es "dato faltante", no error.
type Issue struct {
	Kind    Kind   `json:"kind"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

const laneSchema = `{"type":"array","minItems":1,"items":{"type":"string","pattern":"\\S"}}`

func bandedSchema() string {
	lanes := make([]string, 0, len(Lanes))
	props := make([]string, 0, len(Lanes))
	for _, l := range Lanes {
		lanes = append(lanes, fmt.Sprintf("%q", l))
		props = append(props, fmt.Sprintf(`%q:{"$ref":"#/$defs/lane"}`, l))
	}
	bands := make([]string, 0, len(RequiredBands))
	bandProps := make([]string, 0, len(RequiredBands))
	for _, b := range RequiredBands {
		bands = append(bands, fmt.Sprintf("%q", b))
		bandProps = append(bandProps, fmt.Sprintf(`%q:{"$ref":"#/$defs/band"}`, b))
	}
	meta := make([]string, 0, len(MetaKeys))
	for _, m := range MetaKeys {
		meta = append(meta, fmt.Sprintf("%q", m))
	}

	return `{
  "type": "object",
  "required": [` + strings.Join(meta, ",") + `],
  "patternProperties": {"^_": {"type": "string", "pattern": "\\S"}},
  "additionalProperties": {"$ref": "#/$defs/group"},
  "$defs": {
    "lane": ` + laneSchema + `,
    "band": {
      "type": "object",
      "required": ["lanes"],
      "properties": {"lanes": {"type": "object", "required": [` + strings.Join(lanes, ",") + `], "properties": {` + strings.Join(props, ",") + `}}}
    },
    "group": {"type": "object", "required": [` + strings.Join(bands, ",") + `], "properties": {` + strings.Join(bandProps, ",") + `}}
  }
}`
}

const groupsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id","name","examples","core_traits","enrichment","owner_tips","notification_short","cautions","gift_tags"],
    "properties": {
      "id": {"type": "string", "pattern": "\\S"},
      "name": {"type": "string", "pattern": "\\S"},
      "examples": {"$ref": "#/$defs/strs"},
      "core_traits": {"$ref": "#/$defs/strs"},
      "enrichment": {"$ref": "#/$defs/strs"},
      "owner_tips": {"$ref": "#/$defs/strs"},
      "notification_short": {"type": "string", "pattern": "\\S"},
      "cautions": {"$ref": "#/$defs/strs"},
      "gift_tags": {"$ref": "#/$defs/strs"}
    }
  },
  "$defs": {"strs": {"type": "array", "items": {"type": "string", "pattern": "\\S"}}}
}`

const breedSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["ages"],
    "properties": {
      "ages": {
        "type": "object",
        "propertyNames": {"pattern": "^[0-9]+$"},
        "additionalProperties": {
          "type": "object",
          "required": ["lanes"],
          "properties": {"lanes": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
        }
      }
    }
  }
}`

const aliasesSchema = `{
  "type": "object",
  "propertyNames": {"pattern": "\\S"},
  "additionalProperties": {
    "oneOf": [
      {"type": "string", "pattern": "\\S"},
      {"type": "array", "minItems": 1, "items": {"type": "string", "pattern": "\\S"}}
    ]
  }
}`

const taxonomySchema = `{
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {"not": {"type": "null"}}
}`

var (
	schemasOnce sync.Once
	schemas     map[Kind]*jsonschema.Schema
	schemasErr  error
)

func compiledSchemas() (map[Kind]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		src := map[Kind]string{
			KindRecoBanded: bandedSchema(),
			KindGroups:     groupsSchema,
			KindRecoBreed:  breedSchema,
			KindAliases:    aliasesSchema,
			KindTaxonomy:   taxonomySchema,
		}
		schemas = make(map[Kind]*jsonschema.Schema, len(src))
		for k, s := range src {
			c := jsonschema.NewCompiler()
			c.Draft = jsonschema.Draft2020
			url := fmt.Sprintf("https://barkday.local/schemas/%s.schema.json", k)
			if err := c.AddResource(url, strings.NewReader(s)); err != nil {
				schemasErr = fmt.Errorf("schema %s load failed: %w", k, err)
				return
			}
			compiled, err := c.Compile(url)
			if err != nil {
				schemasErr = fmt.Errorf("schema %s compile failed: %w", k, err)
				return
			}
			schemas[k] = compiled
		}
	})
	return schemas, schemasErr
}

// Validate revisa un documento crudo contra el contrato de su Kind.
// Devuelve nil si está todo bien.
func Validate(kind Kind, raw []byte) []Issue {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return []Issue{{Kind: kind, Message: "invalid json: " + err.Error()}}
	}

	// mismo criterio que DecodeBreedPlans
	if kind == KindRecoBreed {
		if m, ok := doc.(map[string]any); ok {
			if inner, ok := m["breeds"].(map[string]any); ok {
				doc = inner
			}
		}
	}

	all, err := compiledSchemas()
	if err != nil {
		return []Issue{{Kind: kind, Message: err.Error()}}
	}
	sch, ok := all[kind]
	if !ok {
		return []Issue{{Kind: kind, Message: "unknown reference kind"}}
	}

	var issues []Issue
	if err := sch.Validate(doc); err != nil {
		issues = append(issues, flatten(kind, err)...)
	}

	switch kind {
	case KindRecoBanded:
		issues = append(issues, missingGroups(doc)...)
	case KindGroups:
		issues = append(issues, duplicateGroups(raw)...)
	}
	return issues
}

func flatten(kind Kind, err error) []Issue {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Issue{{Kind: kind, Message: err.Error()}}
	}

	var out []Issue
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Issue{Kind: kind, Path: e.InstanceLocation, Message: e.Message})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func missingGroups(doc any) []Issue {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	var missing []string
	for _, g := range ExpectedGroups {
		if _, ok := m[g]; !ok {
			missing = append(missing, g)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []Issue{{Kind: KindRecoBanded, Message: "missing expected groups: " + strings.Join(missing, ", ")}}
}

func duplicateGroups(raw []byte) []Issue {
	var items []struct {
		ID   any `json:"id"`
		Name any `json:"name"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	var out []Issue
	ids := map[string]struct{}{}
	names := map[string]struct{}{}
	for i, g := range items {
		if id, ok := g.ID.(string); ok {
			if _, dup := ids[id]; dup {
				out = append(out, Issue{Kind: KindGroups, Path: fmt.Sprintf("/%d/id", i), Message: fmt.Sprintf("duplicate id %q", id)})
			}
			ids[id] = struct{}{}
		}
		if name, ok := g.Name.(string); ok {
			if _, dup := names[name]; dup {
				out = append(out, Issue{Kind: KindGroups, Path: fmt.Sprintf("/%d/name", i), Message: fmt.Sprintf("duplicate name %q", name)})
			}
			names[name] = struct{}{}
		}
	}
	return out
}
