package phrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PatientSource supplies the read-only patient context for an expansion.
// The patient domain implements it; an adapter in cmd wires the two together
// without a package cycle.
type PatientSource interface {
	ContextFor(ctx context.Context, patientID uuid.UUID) (PatientContext, error)
}

// Service exposes phrase management plus the engine operations over a
// repository. The engine functions themselves stay pure; the service is the
// layer that loads data for them.
type Service struct {
	repo     PhraseRepository
	patients PatientSource
	logger   zerolog.Logger
}

func NewService(repo PhraseRepository, patients PatientSource, logger zerolog.Logger) *Service {
	return &Service{repo: repo, patients: patients, logger: logger}
}

func (s *Service) Create(ctx context.Context, p *Phrase) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("content is required")
	}
	for i := range p.Fields {
		f := &p.Fields[i]
		if strings.TrimSpace(f.Key) == "" {
			return fmt.Errorf("field %d: key is required", i)
		}
		if !ValidTypes[f.Type] {
			return fmt.Errorf("field %q: invalid type %q", f.Key, f.Type)
		}
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Phrase, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByShortcut resolves a stored shortcut. Shortcuts are conventionally
// saved with a leading dot, so a bare "sob" retries as ".sob".
func (s *Service) GetByShortcut(ctx context.Context, shortcut string) (*Phrase, error) {
	shortcut = strings.TrimSpace(shortcut)
	p, err := s.repo.GetByShortcut(ctx, shortcut)
	if err != nil && !strings.HasPrefix(shortcut, ".") {
		return s.repo.GetByShortcut(ctx, "."+shortcut)
	}
	return p, err
}

func (s *Service) Update(ctx context.Context, p *Phrase) error {
	for i := range p.Fields {
		f := &p.Fields[i]
		if !ValidTypes[f.Type] {
			return fmt.Errorf("field %q: invalid type %q", f.Key, f.Type)
		}
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Phrase, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Search ranks the whole collection against a free-text query.
func (s *Service) Search(ctx context.Context, query string) ([]*Phrase, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return SearchPhrases(all, query), nil
}

// Expand runs the expansion engine for one phrase. When patientID is set the
// patient context is loaded through the PatientSource; a missing patient is
// treated as no context, matching the engine's degrade-don't-fail contract.
func (s *Service) Expand(ctx context.Context, id uuid.UUID, values FieldValues, patientID *uuid.UUID) (*ExpansionResult, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var pc PatientContext
	if patientID != nil && s.patients != nil {
		pc, err = s.patients.ContextFor(ctx, *patientID)
		if err != nil {
			s.logger.Warn().Err(err).Str("patient_id", patientID.String()).
				Msg("patient context unavailable, expanding without it")
			pc = nil
		}
	}

	result := ExpandPhrase(p, p.Fields, values, pc)
	s.logger.Debug().
		Str("phrase_id", id.String()).
		Int("used_fields", len(result.UsedFields)).
		Msg("phrase expanded")
	return &result, nil
}

// Validate checks the supplied values against the phrase's field constraints.
func (s *Service) Validate(ctx context.Context, id uuid.UUID, values FieldValues) (map[string]string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ValidateFieldValues(p.Fields, values), nil
}

// Lint reports authoring problems in a stored phrase.
func (s *Service) Lint(ctx context.Context, id uuid.UUID) ([]string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return LintPhrase(p), nil
}
