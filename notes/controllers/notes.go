// notes/controllers/notes.go
package controllers

import (
	"context"

	"notes/notes/sources/psql/dao"
	"notes/notes/sources/psql/models"
	"notes/notes/utils/pagination"
	"notes/notes/utils/validation"
)

const (
	OrderUpdatedAsc  = "updated_at"
	OrderUpdatedDesc = "-updated_at"
)

// NormalizeOrdering accepts only the two updated_at orderings; anything else,
// including an empty value, means most recently updated first.
func NormalizeOrdering(ordering string) string {
	if ordering == OrderUpdatedAsc {
		return OrderUpdatedAsc
	}
	return OrderUpdatedDesc
}

type NoteList struct {
	pagination.Page[models.Note]
	Ordering string `json:"ordering"`
}

type NotesController struct {
	dao *dao.NoteDAO
}

func NewNotesController(dao *dao.NoteDAO) *NotesController {
	return &NotesController{dao: dao}
}

func (c *NotesController) ListNotes(ctx context.Context, ordering string, window pagination.Window) (*NoteList, error) {
	ordering = NormalizeOrdering(ordering)
	total, err := c.dao.CountNotes(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := c.dao.ListNotes(ctx, ordering == OrderUpdatedAsc, window.Offset(), window.Limit())
	if err != nil {
		return nil, err
	}
	return &NoteList{
		Page:     pagination.NewPage(window, total, notes),
		Ordering: ordering,
	}, nil
}

// CreateNote expects input decoded with validation.DecodeNote(body, false).
func (c *NotesController) CreateNote(ctx context.Context, in validation.NoteInput) (*models.Note, error) {
	if in.Title == nil {
		return nil, validation.Errors{"title": {validation.MsgRequired}}
	}
	note := &models.Note{Title: *in.Title}
	if in.Content != nil {
		note.Content = *in.Content
	}
	if err := c.dao.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetNoteByID returns nil, nil when the note does not exist.
func (c *NotesController) GetNoteByID(ctx context.Context, id uint) (*models.Note, error) {
	return c.dao.GetNoteByID(ctx, id)
}

// UpdateNote writes the supplied fields only; PUT and PATCH differ in how the
// input was decoded, not here. Returns dao.ErrNoteNotFound if the note is gone.
func (c *NotesController) UpdateNote(ctx context.Context, id uint, in validation.NoteInput) (*models.Note, error) {
	return c.dao.UpdateNote(ctx, id, in.Columns())
}

func (c *NotesController) DeleteNote(ctx context.Context, id uint) error {
	return c.dao.DeleteNote(ctx, id)
}
