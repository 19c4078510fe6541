package repositories

import "notesapi/internal/models"

// NoteRepository defines the interface for note data access.
type NoteRepository interface {
	GetByUser(userID string) ([]models.Note, error)
	GetByID(id string) (*models.Note, error)
	Create(note *models.Note) error
	Update(note *models.Note) error
	Delete(id string) error
}
