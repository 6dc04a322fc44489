package phrase

import (
	"context"

	"github.com/google/uuid"
)

// PhraseRepository is the persistence boundary for phrase definitions.
// Durable storage lives outside this module; the server runs against the
// in-memory implementation and callers with a real store supply their own.
type PhraseRepository interface {
	Create(ctx context.Context, p *Phrase) error
	GetByID(ctx context.Context, id uuid.UUID) (*Phrase, error)
	GetByShortcut(ctx context.Context, shortcut string) (*Phrase, error)
	Update(ctx context.Context, p *Phrase) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Phrase, int, error)
	All(ctx context.Context) ([]*Phrase, error)
}
