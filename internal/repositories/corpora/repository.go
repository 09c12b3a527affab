// Package corpora defines the interface for persisting named spell corpora
package corpora

//go:generate mockgen -destination=mock/mock_repository.go -package=corporamock github.com/KirkDiggler/rpg-spellindex/internal/repositories/corpora Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-spellindex/internal/corpus"
)

// Repository defines the interface for corpus persistence
type Repository interface {
	// Save replaces the corpus stored under a name
	// Returns errors.InvalidArgument for an empty name or nil corpus
	// Storage failures are returned wrapped
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get loads a stored corpus
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.NotFound if no corpus is stored under the name
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns the stored corpus names, sorted
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a stored corpus
	// Returns errors.NotFound if no corpus is stored under the name
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the input for saving a corpus
type SaveInput struct {
	Name   string
	Corpus *corpus.Corpus
}

// SaveOutput reports what was written
type SaveOutput struct {
	Spells     int
	Entities   int
	References int
	SavedAt    time.Time
}

// GetInput defines the input for loading a corpus
type GetInput struct {
	Name string
}

// GetOutput defines the output for loading a corpus
type GetOutput struct {
	Corpus  *corpus.Corpus
	SavedAt time.Time
}

// ListInput defines the input for listing corpora
type ListInput struct{}

// ListOutput defines the output for listing corpora
type ListOutput struct {
	Names []string
}

// DeleteInput defines the input for deleting a corpus
type DeleteInput struct {
	Name string
}

// DeleteOutput defines the output for deleting a corpus
type DeleteOutput struct{}
