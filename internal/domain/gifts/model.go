package gifts

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Gift es un item del feed de regalos. El feed es externo y poco prolijo:
// size puede venir como string ("small, medium") o sizes como array, y los ids
// a veces son números.
type Gift struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	URL         string   `json:"url,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tag         string   `json:"tag,omitempty"`
	AgeTag      string   `json:"ageTag,omitempty"`
	Chewer      string   `json:"chewer,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	MinDogYears *float64 `json:"minDogYears,omitempty"`
	MaxDogYears *float64 `json:"maxDogYears,omitempty"`
}

var sizeSep = regexp.MustCompile(`[, \t]+`)

type rawGift struct {
	ID          flexString      `json:"id"`
	Title       flexString      `json:"title"`
	URL         flexString      `json:"url"`
	Image       flexString      `json:"image"`
	Tag         flexString      `json:"tag"`
	AgeTag      flexString      `json:"ageTag"`
	Chewer      flexString      `json:"chewer"`
	Size        flexString      `json:"size"`
	Sizes       json.RawMessage `json:"sizes"`
	MinDogYears json.RawMessage `json:"minDogYears"`
	MaxDogYears json.RawMessage `json:"maxDogYears"`
}

func (g *Gift) UnmarshalJSON(b []byte) error {
	var raw rawGift
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*g = Gift{
		ID:     strings.TrimSpace(string(raw.ID)),
		Title:  strings.TrimSpace(string(raw.Title)),
		URL:    strings.TrimSpace(string(raw.URL)),
		Image:  strings.TrimSpace(string(raw.Image)),
		Tag:    strings.TrimSpace(string(raw.Tag)),
		AgeTag: strings.TrimSpace(string(raw.AgeTag)),
		Chewer: strings.TrimSpace(string(raw.Chewer)),
	}

	// sizes (array) tiene prioridad sobre size (string)
	var arr []flexString
	if len(raw.Sizes) > 0 && json.Unmarshal(raw.Sizes, &arr) == nil && arr != nil {
		for _, s := range arr {
			if v := strings.ToLower(strings.TrimSpace(string(s))); v != "" {
				g.Sizes = append(g.Sizes, v)
			}
		}
	} else if s := strings.TrimSpace(string(raw.Size)); s != "" {
		for _, p := range sizeSep.Split(s, -1) {
			if p = strings.ToLower(p); p != "" {
				g.Sizes = append(g.Sizes, p)
			}
		}
	}

	g.MinDogYears = parseYears(raw.MinDogYears)
	g.MaxDogYears = parseYears(raw.MaxDogYears)
	return nil
}

// DedupeKey: id, si no url, si no title.
func (g Gift) DedupeKey() string {
	switch {
	case g.ID != "":
		return g.ID
	case g.URL != "":
		return g.URL
	default:
		return g.Title
	}
}

// flexString acepta string, número o bool; null queda vacío.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*f = flexString(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*f = flexString(strconv.FormatBool(t))
	default:
		// objetos/arrays no son un string válido: se ignoran
		*f = ""
	}
	return nil
}

// parseYears acepta número o string numérico; cualquier otra cosa es "sin límite".
func parseYears(b json.RawMessage) *float64 {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var f flexString
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Flags permiten saltear cada predicado del filtro.
type Flags struct {
	IgnoreSize   bool `json:"ignore_size"`
	IgnoreChewer bool `json:"ignore_chewer"`
	IgnoreAge    bool `json:"ignore_age"`
}

// Ignored lista los predicados salteados (para el resumen).
func (f Flags) Ignored() []string {
	out := []string{}
	if f.IgnoreSize {
		out = append(out, "size")
	}
	if f.IgnoreChewer {
		out = append(out, "chewer")
	}
	if f.IgnoreAge {
		out = append(out, "age")
	}
	return out
}

// DecodeCatalog lee el feed: un array de items o {"items": [...]}.
// Los items que no se pueden leer se saltean.
func DecodeCatalog(b []byte) ([]Gift, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var wrapped struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return nil, err
		}
		b = wrapped.Items
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, err
	}

	out := make([]Gift, 0, len(raws))
	for _, r := range raws {
		var g Gift
		if err := json.Unmarshal(r, &g); err != nil {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}
