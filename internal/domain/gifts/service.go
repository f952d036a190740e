package gifts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"barkday/internal/domain/agemodel"
	"barkday/internal/platform/logger"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrFeedUnavailable = errors.New("gift feed unavailable")
)

// Source entrega el catálogo completo de regalos.
type Source interface {
	Catalog(ctx context.Context) ([]Gift, error)
}

// StaticCatalog es un Source en memoria (tests, fallback).
type StaticCatalog []Gift

func (c StaticCatalog) Catalog(ctx context.Context) ([]Gift, error) {
	return append([]Gift(nil), c...), nil
}

// Observer recibe el resultado de cada búsqueda (métricas).
type Observer interface {
	GiftSearch(picked int, err error)
}

type nopObserver struct{}

func (nopObserver) GiftSearch(int, error) {}

type Service struct {
	src Source
	log logger.Logger
	obs Observer
	now func() time.Time
	rnd func() float64
}

func NewService(src Source, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		src: src,
		log: log,
		obs: nopObserver{},
		now: time.Now,
		rnd: defaultRand,
	}
}

// SearchInput: la edad sale de BirthDate si viene; si no, de DogYears; si no, se desconoce.
type SearchInput struct {
	AdultWeightLb float64
	Chewer        agemodel.Chewer
	BirthDate     *time.Time
	DogYears      *float64
	UseSmoothing  bool
	Flags         Flags
}

type Summary struct {
	Count    int      `json:"count"`
	Bucket   string   `json:"size"`
	Chewer   string   `json:"chewer"`
	DogYears *float64 `json:"dog_years,omitempty"`
	Ignored  []string `json:"ignored"`
	Text     string   `json:"text"`
}

type SearchResult struct {
	Items   []Gift  `json:"items"`
	Summary Summary `json:"summary"`
}

// WithObserver engancha métricas. nil vuelve al no-op.
func (s *Service) WithObserver(o Observer) *Service {
	if o == nil {
		o = nopObserver{}
	}
	s.obs = o
	return s
}

func (s *Service) Search(ctx context.Context, in SearchInput) (SearchResult, error) {
	res, err := s.search(ctx, in)
	s.obs.GiftSearch(len(res.Items), err)
	return res, err
}

func (s *Service) search(ctx context.Context, in SearchInput) (SearchResult, error) {
	if math.IsNaN(in.AdultWeightLb) || math.IsInf(in.AdultWeightLb, 0) || in.AdultWeightLb <= 0 {
		return SearchResult{}, fmt.Errorf("%w: adult weight must be positive", ErrInvalidInput)
	}

	dogYears := math.NaN()
	switch {
	case in.BirthDate != nil:
		p := agemodel.Profile{
			BirthDate:     *in.BirthDate,
			AdultWeightLb: in.AdultWeightLb,
			Chewer:        in.Chewer,
			UseSmoothing:  in.UseSmoothing,
		}
		res, err := agemodel.Compute(p, s.now())
		if err != nil {
			return SearchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		dogYears = res.HumanEqYears
	case in.DogYears != nil:
		if math.IsNaN(*in.DogYears) || math.IsInf(*in.DogYears, 0) || *in.DogYears < 0 {
			return SearchResult{}, fmt.Errorf("%w: dog years must be a non-negative number", ErrInvalidInput)
		}
		dogYears = *in.DogYears
	}

	catalog, err := s.src.Catalog(ctx)
	if err != nil {
		s.log.Warn("gift feed load failed", map[string]any{"err": err})
		return SearchResult{}, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	c := Criteria{
		Bucket:   SizeBucket(in.AdultWeightLb),
		Chewer:   chewerTag(in.Chewer),
		DogYears: dogYears,
	}
	items := Filter(catalog, c, in.Flags, s.rnd)

	sum := Summary{
		Count:   len(items),
		Bucket:  c.Bucket,
		Chewer:  c.Chewer,
		Ignored: in.Flags.Ignored(),
	}
	if !math.IsNaN(dogYears) {
		dy := dogYears
		sum.DogYears = &dy
	}
	sum.Text = summaryText(sum)

	s.log.Debug("gift search", map[string]any{
		"catalog": len(catalog),
		"picked":  len(items),
		"size":    c.Bucket,
		"chewer":  c.Chewer,
	})
	return SearchResult{Items: items, Summary: sum}, nil
}

// "Showing 5 picks • size=medium • chewer=normal • age≈24.10 DY • ignored: size"
func summaryText(s Summary) string {
	parts := []string{fmt.Sprintf("size=%s", s.Bucket), fmt.Sprintf("chewer=%s", s.Chewer)}
	if s.DogYears != nil {
		parts = append(parts, fmt.Sprintf("age≈%.2f DY", *s.DogYears))
	}
	out := fmt.Sprintf("Showing %d picks • %s", s.Count, strings.Join(parts, " • "))
	if len(s.Ignored) > 0 {
		out += " • ignored: " + strings.Join(s.Ignored, ", ")
	}
	return out
}
