package calculations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"barkday/internal/domain/agemodel"
	"barkday/internal/domain/breeds"
	"barkday/internal/domain/plans"
	"barkday/internal/domain/reference"
	"barkday/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("run not found")
)

const (
	defaultDogName = "your dog"
	epigeneticNote = "Science curve: UCSD DNA-methylation (≥ 1 yr). Note: visualization context; math remains weight-based."
)

// Observer recibe un aviso por cada cálculo (métricas).
type Observer interface {
	CalculationCompleted(planSource string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) CalculationCompleted(string, time.Duration) {}

type Service struct {
	repo     Repository
	store    *reference.Store
	resolver *plans.Resolver
	log      logger.Logger
	obs      Observer
	now      func() time.Time
}

func NewService(repo Repository, store *reference.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:     repo,
		store:    store,
		resolver: plans.NewResolver(log.With(map[string]any{"component": "plans"})),
		log:      log,
		obs:      nopObserver{},
		now:      time.Now,
	}
}

// WithObserver engancha métricas. nil vuelve al no-op.
func (s *Service) WithObserver(o Observer) *Service {
	if o == nil {
		o = nopObserver{}
	}
	s.obs = o
	return s
}

// Calculate corre el pipeline completo sobre el snapshot actual de reference data:
// edad -> raza/grupo -> plan del próximo cumpleaños.
func (s *Service) Calculate(ctx context.Context, in Input) (Calculation, error) {
	started := time.Now()
	now := s.now()

	p := in.Profile
	p.Name = strings.TrimSpace(p.Name)
	p.BreedText = strings.TrimSpace(p.BreedText)
	p.GroupLabel = strings.TrimSpace(p.GroupLabel)
	if p.Chewer == "" {
		p.Chewer = agemodel.ChewerNormal
	}

	age, err := agemodel.Compute(p, now)
	if err != nil {
		return Calculation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ref := s.store.Snapshot()
	c := Calculation{
		Age:        age,
		ComputedAt: now,
	}

	if in.SeriesCount > 0 {
		c.Milestones = agemodel.MilestoneSeries(p.BirthDate, now, age.HumanEqYears, p.AdultWeightLb, p.UseSmoothing, in.SeriesCount)
	}

	c.DisplayName = p.Name
	if c.DisplayName == "" {
		c.DisplayName = defaultDogName
	}
	c.Headline = fmt.Sprintf("%s is about to be %d years old!", c.DisplayName, age.UpcomingMilestone)

	// breed canónica para mostrar; si no resuelve se muestra lo que escribió el usuario
	if canon, ok := breeds.NormalizeBreed(ref, p.BreedText); ok {
		c.CanonicalBreed = canon
	} else {
		c.CanonicalBreed = p.BreedText
	}

	// el grupo del breed mapeado pisa al elegido
	c.GroupLabel = p.GroupLabel
	if g, ok := breeds.FindGroupByBreedName(ref, p.BreedText); ok {
		c.MappedGroup = &MappedGroup{
			ID:                g.ID,
			Name:              g.Name,
			CoreTraits:        g.CoreTraits,
			NotificationShort: g.NotificationShort,
			GiftTags:          g.GiftTags,
		}
		c.GroupLabel = g.Name
	}
	c.GroupKey = breeds.ResolveGroupKey(c.GroupLabel)
	if c.GroupLabel == "" {
		c.GroupLabel = string(c.GroupKey)
	}
	c.GroupMeta = breeds.Meta(c.GroupKey)
	c.SizeWarning = breeds.SizeWarning(string(c.GroupKey), p.AdultWeightLb)
	c.ProfileLine = profileLine(c.DisplayName, c.CanonicalBreed, c.GroupLabel, p.AdultWeightLb)

	if in.ShowEpigenetic {
		c.Epigenetic = epigeneticNote
	}

	c.Plan = s.resolver.Resolve(ref, c.GroupLabel, p.BreedText, float64(age.UpcomingMilestone))

	s.obs.CalculationCompleted(string(c.Plan.Source), time.Since(started))
	return c, nil
}

func profileLine(name, breed, group string, lb float64) string {
	var b strings.Builder
	b.WriteString("Profile: ")
	b.WriteString(name)
	if breed != "" {
		b.WriteString(" — ")
		b.WriteString(breed)
	}
	fmt.Fprintf(&b, " • Group: %s • Weight: %g lb", group, lb)
	return b.String()
}

// Save calcula y guarda el resultado para el usuario.
func (s *Service) Save(ctx context.Context, ownerUserID string, in Input) (Run, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Run{}, ErrInvalidInput
	}

	calc, err := s.Calculate(ctx, in)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        calc.DisplayName,
		Input:       in,
		Result:      calc,
		CreatedAt:   calc.ComputedAt,
	}
	if err := s.repo.Create(ctx, run); err != nil {
		return Run{}, err
	}

	s.log.Info("run saved", map[string]any{
		"run_id":      run.ID,
		"owner":       ownerUserID,
		"plan_source": string(calc.Plan.Source),
	})
	return run, nil
}

// GetByID devuelve el run solo si es del usuario; si no, ErrNotFound.
func (s *Service) GetByID(ctx context.Context, ownerUserID, id string) (Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrNotFound
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Run{}, err
	}
	if r.OwnerUserID != ownerUserID {
		return Run{}, ErrNotFound
	}
	return r, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Run, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}
