package repository

import (
	"context"

	"github.com/notesapp/notes-api/internal/domain"
)

// ListNotesInput carries an already-validated listing query: Sort is one
// of the domain.SortKey constants and Limit is within bounds.
type ListNotesInput struct {
	OwnerID     int64
	TitleFilter string // case-insensitive substring match; "" means no filter
	Sort        domain.SortKey
	Limit       int
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	// GetByID looks up by id and owner together; a note under a different
	// owner is domain.ErrNoteNotFound, same as no note at all.
	GetByID(ctx context.Context, id, ownerID int64) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id, ownerID int64) error
	List(ctx context.Context, input ListNotesInput) ([]*domain.Note, error)
}
