package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")

const (
	TitleMaxLen = 200

	ListLimitDefault = 20
	ListLimitMax     = 100
)

type Note struct {
	ID      int64
	OwnerID int64
	Title   string
	Content *string // nil means no content

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SortKey string

const (
	SortCreatedAsc  SortKey = "created"
	SortCreatedDesc SortKey = "-created"
	SortTitleAsc    SortKey = "title"
	SortTitleDesc   SortKey = "-title"
)

// InvalidArgumentError reports a query or patch field that failed
// validation. Recoverable by the caller resubmitting with a fixed value.
type InvalidArgumentError struct {
	Field   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
