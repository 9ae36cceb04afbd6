package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/notesapp/notes-api/internal/domain"
	"github.com/notesapp/notes-api/internal/repository"
)

type NoteUsecase struct {
	repo repository.NoteRepository
}

func NewNoteUsecase(repo repository.NoteRepository) *NoteUsecase {
	return &NoteUsecase{repo: repo}
}

type CreateNoteInput struct {
	Title   string
	Content *string
}

// UpdateNoteInput is a partial patch: nil fields keep their prior value.
// A JSON null is indistinguishable from an omitted field, so content
// cannot be cleared back to NULL through a patch once set.
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

type ListNotesInput struct {
	TitleFilter string
	Sort        string // empty means newest first
	Limit       *int   // nil means the default page size; an explicit 0 is rejected
}

func (u *NoteUsecase) Create(ctx context.Context, owner *domain.User, input CreateNoteInput) (*domain.Note, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	note, err := u.repo.Create(ctx, &domain.Note{
		OwnerID: owner.ID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (u *NoteUsecase) Get(ctx context.Context, owner *domain.User, id int64) (*domain.Note, error) {
	note, err := u.repo.GetByID(ctx, id, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// Update applies a partial patch to a note scoped to owner and refreshes
// updated_at. Fields absent from the patch retain their stored values.
func (u *NoteUsecase) Update(ctx context.Context, owner *domain.User, id int64, patch UpdateNoteInput) (*domain.Note, error) {
	note, err := u.repo.GetByID(ctx, id, owner.ID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = patch.Content
	}

	updated, err := u.repo.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return updated, nil
}

func (u *NoteUsecase) Delete(ctx context.Context, owner *domain.User, id int64) error {
	if err := u.repo.Delete(ctx, id, owner.ID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (u *NoteUsecase) List(ctx context.Context, owner *domain.User, input ListNotesInput) ([]*domain.Note, error) {
	sort, err := parseSortKey(input.Sort)
	if err != nil {
		return nil, err
	}

	limit := domain.ListLimitDefault
	if input.Limit != nil {
		limit = *input.Limit
		if limit < 1 || limit > domain.ListLimitMax {
			return nil, &domain.InvalidArgumentError{
				Field:   "limit",
				Message: fmt.Sprintf("must be between 1 and %d", domain.ListLimitMax),
			}
		}
	}

	notes, err := u.repo.List(ctx, repository.ListNotesInput{
		OwnerID:     owner.ID,
		TitleFilter: input.TitleFilter,
		Sort:        sort,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// validateTitle bounds the title in characters, not bytes, matching the
// VARCHAR(200) column.
func validateTitle(title string) error {
	if title == "" || utf8.RuneCountInString(title) > domain.TitleMaxLen {
		return &domain.InvalidArgumentError{
			Field:   "title",
			Message: fmt.Sprintf("must be between 1 and %d characters", domain.TitleMaxLen),
		}
	}
	return nil
}

func parseSortKey(raw string) (domain.SortKey, error) {
	if raw == "" {
		return domain.SortCreatedDesc, nil
	}
	switch key := domain.SortKey(strings.TrimSpace(raw)); key {
	case domain.SortCreatedAsc, domain.SortCreatedDesc, domain.SortTitleAsc, domain.SortTitleDesc:
		return key, nil
	default:
		return "", &domain.InvalidArgumentError{
			Field:   "sort",
			Message: "must be one of: created, -created, title, -title",
		}
	}
}
