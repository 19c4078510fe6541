package repositories

import (
	"errors"
	"fmt"

	"notesapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNoteRepository is a GORM implementation of NoteRepository.
type GORMNoteRepository struct {
	db *gorm.DB
}

// NewGORMNoteRepository creates a new instance of GORMNoteRepository.
func NewGORMNoteRepository(db *gorm.DB) *GORMNoteRepository {
	return &GORMNoteRepository{
		db: db,
	}
}

// GetByUser retrieves all notes owned by the given user.
func (r *GORMNoteRepository) GetByUser(userID string) ([]models.Note, error) {
	var notes []models.Note
	if err := r.db.Find(&notes, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get notes for user %s: %w", userID, err)
	}
	return notes, nil
}

// GetByID retrieves a single note by its ID.
func (r *GORMNoteRepository) GetByID(id string) (*models.Note, error) {
	var note models.Note
	if err := r.db.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("note with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get note by ID %s: %w", id, err)
	}
	return &note, nil
}

// Create creates a new note in the database.
func (r *GORMNoteRepository) Create(note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if err := r.db.Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// Update updates an existing note in the database.
func (r *GORMNoteRepository) Update(note *models.Note) error {
	res := r.db.Save(note) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save does not return ErrRecordNotFound when no rows
		// match, so check RowsAffected.
		return fmt.Errorf("note with ID %s: %w", note.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a note by its ID from the database.
func (r *GORMNoteRepository) Delete(id string) error {
	res := r.db.Delete(&models.Note{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("note with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
