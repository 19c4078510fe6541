package services

import (
	"errors"
	"fmt"
	"log"

	"notesapi/internal/models"
	"notesapi/internal/repositories"
	"notesapi/pkg/rabbitmq"
)

// DefaultTag is assigned to notes created without an explicit tag.
const DefaultTag = "General"

// NoteService handles business logic for notes, including the ownership
// check that guards every mutation.
type NoteService struct {
	noteRepo repositories.NoteRepository
	mqClient *rabbitmq.Client
}

// NewNoteService creates a new NoteService. The RabbitMQ client may be nil,
// in which case lifecycle events are skipped.
func NewNoteService(noteRepo repositories.NoteRepository, mqClient *rabbitmq.Client) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		mqClient: mqClient,
	}
}

// ListNotes retrieves all notes owned by the given user.
func (s *NoteService) ListNotes(userID string) ([]models.Note, error) {
	return s.noteRepo.GetByUser(userID)
}

// CreateNote creates a note owned by the given user. An empty tag falls
// back to DefaultTag.
func (s *NoteService) CreateNote(userID, title, description, tag string) (*models.Note, error) {
	if tag == "" {
		tag = DefaultTag
	}

	note := &models.Note{
		UserID:      userID,
		Title:       title,
		Description: description,
		Tag:         tag,
	}
	if err := s.noteRepo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.publishEvent("note.created", note)
	return note, nil
}

// UpdateNote applies the non-empty fields to a note after verifying the
// caller owns it. Not-found is checked before ownership so a wrong id still
// yields 404 at the boundary.
func (s *NoteService) UpdateNote(userID, noteID, title, description, tag string) (*models.Note, error) {
	note, err := s.getOwnedNote(userID, noteID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		note.Title = title
	}
	if description != "" {
		note.Description = description
	}
	if tag != "" {
		note.Tag = tag
	}

	if err := s.noteRepo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note %s: %w", noteID, err)
	}

	s.publishEvent("note.updated", note)
	return note, nil
}

// DeleteNote removes a note after verifying the caller owns it.
func (s *NoteService) DeleteNote(userID, noteID string) error {
	note, err := s.getOwnedNote(userID, noteID)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(noteID); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}

	s.publishEvent("note.deleted", note)
	return nil
}

// getOwnedNote loads a note and asserts the given user owns it.
func (s *NoteService) getOwnedNote(userID, noteID string) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(noteID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note %s: %w", noteID, err)
	}
	if note.UserID != userID {
		return nil, ErrNotOwner
	}
	return note, nil
}

// publishEvent publishes a note lifecycle event. Publishing is best effort;
// a broker failure never fails the request.
func (s *NoteService) publishEvent(event string, note *models.Note) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishNoteEvent(rabbitmq.NoteEvent{
		Event:  event,
		NoteID: note.ID,
		UserID: note.UserID,
		Tag:    note.Tag,
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s event for note %s: %v", event, note.ID, err)
	}
}
