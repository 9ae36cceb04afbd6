// seed inserts a demo user and a handful of notes into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/notesapp/notes-api/internal/auth"
	"github.com/notesapp/notes-api/internal/domain"
	"github.com/notesapp/notes-api/internal/infrastructure/postgres"
	"github.com/notesapp/notes-api/internal/usecase"
)

const (
	seedUsername = "alice"
	seedEmail    = "alice@test.local"
	seedPassword = "password123"
)

type noteSpec struct {
	title   string
	content string
}

var notes = []noteSpec{
	{"Shopping", "milk, eggs, bread"},
	{"Team meeting notes", "agenda: roadmap, hiring"},
	{"Banana bread recipe", "3 ripe bananas, 200g flour"},
	{"Apple varieties to try", "fuji, honeycrisp"},
	{"Cherry blossom trip", "book flights for April"},
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.Migrate(ctx, dsn); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	noteUsecase := usecase.NewNoteUsecase(noteRepo)

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user, err := userRepo.Create(ctx, &domain.User{
		Username:       seedUsername,
		Email:          seedEmail,
		HashedPassword: hash,
	})
	if errors.Is(err, domain.ErrUserExists) {
		user, err = userRepo.FindByUsername(ctx, seedUsername)
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	for _, spec := range notes {
		content := spec.content
		_, err := noteUsecase.Create(ctx, user, usecase.CreateNoteInput{
			Title:   spec.title,
			Content: &content,
		})
		if err != nil {
			log.Fatalf("seed note %q: %v", spec.title, err)
		}
	}

	fmt.Printf("seeded user %q (password %q) with %d notes\n", seedUsername, seedPassword, len(notes))
}
