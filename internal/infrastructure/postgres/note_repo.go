package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notesapp/notes-api/internal/domain"
	"github.com/notesapp/notes-api/internal/repository"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		INSERT INTO notes (owner_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, title, content, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, note.OwnerID, note.Title, note.Content)
	return scanNote(row)
}

func (r *NoteRepository) GetByID(ctx context.Context, id, ownerID int64) (*domain.Note, error) {
	query := `
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = $1 AND owner_id = $2`

	return scanNote(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		UPDATE notes
		SET    title      = $3,
		       content    = $4,
		       updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, content, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, note.ID, note.OwnerID, note.Title, note.Content)
	return scanNote(row)
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) List(ctx context.Context, input repository.ListNotesInput) ([]*domain.Note, error) {
	args := []any{input.OwnerID}
	where := []string{"owner_id = $1"}

	if input.TitleFilter != "" {
		args = append(args, likePattern(input.TitleFilter))
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	args = append(args, input.Limit)

	query := fmt.Sprintf(`
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM notes
		WHERE %s
		ORDER BY %s
		LIMIT $%d`,
		strings.Join(where, " AND "), orderBy(input.Sort), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern builds an ILIKE pattern matching the filter as a literal
// substring: %, _ and \ in the filter are escaped so they lose their
// wildcard meaning.
func likePattern(filter string) string {
	return "%" + likeEscaper.Replace(filter) + "%"
}

// orderBy maps a validated sort key to an ORDER BY clause. The id
// tiebreak keeps listings deterministic on equal sort values. Input is
// never user text, the usecase rejects unknown keys before this point.
func orderBy(sort domain.SortKey) string {
	switch sort {
	case domain.SortCreatedAsc:
		return "created_at ASC, id ASC"
	case domain.SortTitleAsc:
		return "title ASC, id ASC"
	case domain.SortTitleDesc:
		return "title DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &n, nil
}
