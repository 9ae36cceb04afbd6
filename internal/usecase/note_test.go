package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/notesapp/notes-api/internal/domain"
	"github.com/notesapp/notes-api/internal/repository"
	"github.com/notesapp/notes-api/internal/usecase"
)

// ---- fakes ----

type fakeNoteRepo struct {
	create  func(ctx context.Context, note *domain.Note) (*domain.Note, error)
	getByID func(ctx context.Context, id, ownerID int64) (*domain.Note, error)
	update  func(ctx context.Context, note *domain.Note) (*domain.Note, error)
	delete  func(ctx context.Context, id, ownerID int64) error
	list    func(ctx context.Context, input repository.ListNotesInput) ([]*domain.Note, error)
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	return r.create(ctx, note)
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id, ownerID int64) (*domain.Note, error) {
	return r.getByID(ctx, id, ownerID)
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	return r.update(ctx, note)
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id, ownerID int64) error {
	return r.delete(ctx, id, ownerID)
}

func (r *fakeNoteRepo) List(ctx context.Context, input repository.ListNotesInput) ([]*domain.Note, error) {
	return r.list(ctx, input)
}

// ---- helpers ----

var owner = &domain.User{ID: 7, Username: "alice"}

func strptr(s string) *string { return &s }

func isInvalidArgument(t *testing.T, err error, field string) {
	t.Helper()
	var invalid *domain.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
	if invalid.Field != field {
		t.Errorf("invalid field = %q, want %q", invalid.Field, field)
	}
}

// ---- Create ----

func TestCreateNote_ScopesToOwner(t *testing.T) {
	var persisted *domain.Note
	repo := &fakeNoteRepo{
		create: func(_ context.Context, note *domain.Note) (*domain.Note, error) {
			persisted = note
			created := *note
			created.ID = 1
			return &created, nil
		},
	}

	note, err := usecase.NewNoteUsecase(repo).Create(context.Background(), owner,
		usecase.CreateNoteInput{Title: "Shopping", Content: strptr("milk")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if persisted.OwnerID != owner.ID {
		t.Errorf("owner_id = %d, want %d", persisted.OwnerID, owner.ID)
	}
	if note.ID == 0 {
		t.Error("returned note has no server-assigned id")
	}
}

func TestCreateNote_TitleBounds(t *testing.T) {
	repo := &fakeNoteRepo{
		create: func(_ context.Context, note *domain.Note) (*domain.Note, error) {
			return note, nil
		},
	}
	uc := usecase.NewNoteUsecase(repo)

	_, err := uc.Create(context.Background(), owner, usecase.CreateNoteInput{Title: ""})
	isInvalidArgument(t, err, "title")

	_, err = uc.Create(context.Background(), owner,
		usecase.CreateNoteInput{Title: strings.Repeat("x", 201)})
	isInvalidArgument(t, err, "title")

	// The bound counts characters, not bytes: 150 two-byte runes fit.
	_, err = uc.Create(context.Background(), owner,
		usecase.CreateNoteInput{Title: strings.Repeat("é", 150)})
	if err != nil {
		t.Errorf("150-char multibyte title rejected: %v", err)
	}

	_, err = uc.Create(context.Background(), owner,
		usecase.CreateNoteInput{Title: strings.Repeat("é", 201)})
	isInvalidArgument(t, err, "title")
}

// ---- Update ----

func TestUpdateNote_ContentOnlyPatch_KeepsTitle(t *testing.T) {
	stored := &domain.Note{ID: 1, OwnerID: owner.ID, Title: "Shopping", Content: strptr("milk")}

	var updated *domain.Note
	repo := &fakeNoteRepo{
		getByID: func(_ context.Context, id, ownerID int64) (*domain.Note, error) {
			if id != stored.ID || ownerID != owner.ID {
				return nil, domain.ErrNoteNotFound
			}
			copied := *stored
			return &copied, nil
		},
		update: func(_ context.Context, note *domain.Note) (*domain.Note, error) {
			updated = note
			result := *note
			result.UpdatedAt = time.Now()
			return &result, nil
		},
	}

	note, err := usecase.NewNoteUsecase(repo).Update(context.Background(), owner, stored.ID,
		usecase.UpdateNoteInput{Content: strptr("milk, eggs")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != "Shopping" {
		t.Errorf("title changed by content-only patch: %q", updated.Title)
	}
	if note.Content == nil || *note.Content != "milk, eggs" {
		t.Errorf("content = %v, want %q", note.Content, "milk, eggs")
	}
}

func TestUpdateNote_PatchTitleStillBounded(t *testing.T) {
	repo := &fakeNoteRepo{
		getByID: func(_ context.Context, _, _ int64) (*domain.Note, error) {
			return &domain.Note{ID: 1, OwnerID: owner.ID, Title: "Shopping"}, nil
		},
	}

	_, err := usecase.NewNoteUsecase(repo).Update(context.Background(), owner, 1,
		usecase.UpdateNoteInput{Title: strptr(strings.Repeat("x", 201))})
	isInvalidArgument(t, err, "title")
}

func TestUpdateNote_ForeignNote_ReturnsNotFound(t *testing.T) {
	repo := &fakeNoteRepo{
		getByID: func(_ context.Context, _, _ int64) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	}

	_, err := usecase.NewNoteUsecase(repo).Update(context.Background(), owner, 99,
		usecase.UpdateNoteInput{Content: strptr("x")})
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("want ErrNoteNotFound, got %v", err)
	}
}

// ---- Get / Delete ----

func TestGetNote_PassesOwnerScope(t *testing.T) {
	repo := &fakeNoteRepo{
		getByID: func(_ context.Context, id, ownerID int64) (*domain.Note, error) {
			if id == 1 && ownerID == owner.ID {
				return &domain.Note{ID: 1, OwnerID: owner.ID, Title: "Shopping"}, nil
			}
			return nil, domain.ErrNoteNotFound
		},
	}
	uc := usecase.NewNoteUsecase(repo)

	if _, err := uc.Get(context.Background(), owner, 1); err != nil {
		t.Errorf("own note: unexpected error %v", err)
	}

	other := &domain.User{ID: 8, Username: "bob"}
	if _, err := uc.Get(context.Background(), other, 1); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("foreign note: want ErrNoteNotFound, got %v", err)
	}
}

func TestDeleteNote_NotFoundPropagates(t *testing.T) {
	repo := &fakeNoteRepo{
		delete: func(_ context.Context, _, _ int64) error {
			return domain.ErrNoteNotFound
		},
	}

	err := usecase.NewNoteUsecase(repo).Delete(context.Background(), owner, 99)
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("want ErrNoteNotFound, got %v", err)
	}
}

// ---- List ----

func TestListNotes_Defaults(t *testing.T) {
	var captured repository.ListNotesInput
	repo := &fakeNoteRepo{
		list: func(_ context.Context, input repository.ListNotesInput) ([]*domain.Note, error) {
			captured = input
			return nil, nil
		},
	}

	_, err := usecase.NewNoteUsecase(repo).List(context.Background(), owner, usecase.ListNotesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Sort != domain.SortCreatedDesc {
		t.Errorf("default sort = %q, want %q", captured.Sort, domain.SortCreatedDesc)
	}
	if captured.Limit != domain.ListLimitDefault {
		t.Errorf("default limit = %d, want %d", captured.Limit, domain.ListLimitDefault)
	}
	if captured.OwnerID != owner.ID {
		t.Errorf("owner_id = %d, want %d", captured.OwnerID, owner.ID)
	}
}

func TestListNotes_SortKeys(t *testing.T) {
	repo := &fakeNoteRepo{
		list: func(_ context.Context, _ repository.ListNotesInput) ([]*domain.Note, error) {
			return nil, nil
		},
	}
	uc := usecase.NewNoteUsecase(repo)

	for _, sort := range []string{"created", "-created", "title", "-title"} {
		if _, err := uc.List(context.Background(), owner, usecase.ListNotesInput{Sort: sort}); err != nil {
			t.Errorf("List(sort=%q): unexpected error %v", sort, err)
		}
	}

	_, err := uc.List(context.Background(), owner, usecase.ListNotesInput{Sort: "updated"})
	isInvalidArgument(t, err, "sort")
}

func TestListNotes_LimitBounds(t *testing.T) {
	repo := &fakeNoteRepo{
		list: func(_ context.Context, _ repository.ListNotesInput) ([]*domain.Note, error) {
			return nil, nil
		},
	}
	uc := usecase.NewNoteUsecase(repo)
	intptr := func(i int) *int { return &i }

	// Out-of-range limits are rejected, not clamped.
	for _, limit := range []int{0, -1, 101} {
		_, err := uc.List(context.Background(), owner, usecase.ListNotesInput{Limit: intptr(limit)})
		isInvalidArgument(t, err, "limit")
	}

	for _, limit := range []int{1, 100} {
		if _, err := uc.List(context.Background(), owner, usecase.ListNotesInput{Limit: intptr(limit)}); err != nil {
			t.Errorf("limit=%d: unexpected error %v", limit, err)
		}
	}
}
