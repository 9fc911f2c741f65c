// Package seed fills an empty notes table with a few sample notes.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"time"

	"notes/notes/sources/psql/models"
	"notes/notes/utils/color"
	"notes/notes/utils/logging"
	"notes/notes/utils/validation"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed samples.yaml
var samplesYAML []byte

type Sample struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// Store is the slice of NoteDAO the seeder needs.
type Store interface {
	HasNotes(ctx context.Context) (bool, error)
	CreateNotes(ctx context.Context, notes []models.Note) error
}

func Samples() ([]Sample, error) {
	var samples []Sample
	if err := yaml.Unmarshal(samplesYAML, &samples); err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}
	return samples, nil
}

// Run inserts the samples when the store holds no notes at all and reports
// what it did on out. It returns the number of notes inserted.
func Run(ctx context.Context, store Store, out io.Writer, now time.Time) (int, error) {
	exists, err := store.HasNotes(ctx)
	if err != nil {
		return 0, err
	}
	if exists {
		logging.AppLogger.Warn("seed skipped, notes already exist")
		fmt.Fprintln(out, color.ColorWarning("Notes already exist. No seeding performed."))
		return 0, nil
	}

	samples, err := Samples()
	if err != nil {
		return 0, err
	}
	notes := make([]models.Note, 0, len(samples))
	for _, s := range samples {
		title, err := validation.CleanTitle(s.Title)
		if err != nil {
			return 0, fmt.Errorf("sample %q: %w", s.Title, err)
		}
		notes = append(notes, models.Note{
			Title:     title,
			Content:   s.Content,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := store.CreateNotes(ctx, notes); err != nil {
		return 0, err
	}

	logging.AppLogger.Info("seeded sample notes", zap.Int("count", len(notes)))
	fmt.Fprintln(out, color.ColorSuccess(fmt.Sprintf("Seeded %d sample notes.", len(notes))))
	return len(notes), nil
}
