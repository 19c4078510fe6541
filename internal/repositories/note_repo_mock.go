package repositories

import (
	"fmt"
	"sync"
	"time"

	"notesapi/internal/models"

	"github.com/google/uuid"
)

// MockNoteRepository is an in-memory implementation of NoteRepository.
type MockNoteRepository struct {
	notes map[string]models.Note
	mu    sync.RWMutex
}

// NewMockNoteRepository creates a new instance of MockNoteRepository.
func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{
		notes: make(map[string]models.Note),
	}
}

// GetByUser returns all notes owned by the given user.
func (r *MockNoteRepository) GetByUser(userID string) ([]models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	noteList := make([]models.Note, 0)
	for _, n := range r.notes {
		if n.UserID == userID {
			noteList = append(noteList, n)
		}
	}
	return noteList, nil
}

// GetByID returns a note by its ID.
func (r *MockNoteRepository) GetByID(id string) (*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, fmt.Errorf("note with ID %s: %w", id, ErrNotFound)
	}
	return &note, nil
}

// Create adds a new note.
func (r *MockNoteRepository) Create(note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	r.notes[note.ID] = *note
	return nil
}

// Update modifies an existing note.
func (r *MockNoteRepository) Update(note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.notes[note.ID]
	if !ok {
		return fmt.Errorf("note with ID %s: %w", note.ID, ErrNotFound)
	}
	r.notes[note.ID] = *note
	return nil
}

// Delete removes a note by its ID.
func (r *MockNoteRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.notes[id]
	if !ok {
		return fmt.Errorf("note with ID %s: %w", id, ErrNotFound)
	}
	delete(r.notes, id)
	return nil
}
