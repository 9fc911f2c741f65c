// notes/sources/psql/dao/dao.note.go
package dao

import (
	"context"
	"errors"

	"notes/notes/sources/psql/models"
	"notes/notes/utils/logging"

	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteDAO struct {
	DB *gorm.DB
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{DB: db}
}

func (dao *NoteDAO) CreateNote(ctx context.Context, note *models.Note) error {
	defer logging.LogDuration(ctx, "NoteDAO.CreateNote")()
	return dao.DB.WithContext(ctx).Create(note).Error
}

// CreateNotes inserts all notes in a single transaction.
func (dao *NoteDAO) CreateNotes(ctx context.Context, notes []models.Note) error {
	defer logging.LogDuration(ctx, "NoteDAO.CreateNotes")()
	if len(notes) == 0 {
		return nil
	}
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&notes).Error
	})
}

// GetNoteByID returns nil, nil when no note has the given id.
func (dao *NoteDAO) GetNoteByID(ctx context.Context, id uint) (*models.Note, error) {
	defer logging.LogDuration(ctx, "NoteDAO.GetNoteByID")()
	var note models.Note
	err := dao.DB.WithContext(ctx).First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (dao *NoteDAO) CountNotes(ctx context.Context) (int64, error) {
	defer logging.LogDuration(ctx, "NoteDAO.CountNotes")()
	var total int64
	err := dao.DB.WithContext(ctx).Model(&models.Note{}).Count(&total).Error
	return total, err
}

func (dao *NoteDAO) HasNotes(ctx context.Context) (bool, error) {
	defer logging.LogDuration(ctx, "NoteDAO.HasNotes")()
	var ids []uint
	err := dao.DB.WithContext(ctx).Model(&models.Note{}).Limit(1).Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// ListNotes returns one window of notes ordered by updated_at, ties broken by
// id in the same direction.
func (dao *NoteDAO) ListNotes(ctx context.Context, ascending bool, offset, limit int) ([]models.Note, error) {
	defer logging.LogDuration(ctx, "NoteDAO.ListNotes")()
	direction := "desc"
	if ascending {
		direction = "asc"
	}
	notes := []models.Note{}
	err := dao.DB.WithContext(ctx).
		Order("updated_at " + direction).
		Order("id " + direction).
		Offset(offset).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote applies updates (column -> value) and returns the stored row.
// updated_at is refreshed even when no other column changes.
func (dao *NoteDAO) UpdateNote(ctx context.Context, id uint, updates map[string]interface{}) (*models.Note, error) {
	defer logging.LogDuration(ctx, "NoteDAO.UpdateNote")()
	var note models.Note
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values := make(map[string]interface{}, len(updates)+1)
		for column, value := range updates {
			values[column] = value
		}
		values["updated_at"] = tx.NowFunc()

		res := tx.Model(&models.Note{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoteNotFound
		}
		return tx.First(&note, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (dao *NoteDAO) DeleteNote(ctx context.Context, id uint) error {
	defer logging.LogDuration(ctx, "NoteDAO.DeleteNote")()
	res := dao.DB.WithContext(ctx).Delete(&models.Note{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
