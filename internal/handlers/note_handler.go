package handlers

import (
	"errors"
	"log"

	"notesapi/internal/middleware"
	"notesapi/internal/services"
	"notesapi/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles HTTP requests for notes.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// RegisterRoutes registers the note routes with the Fiber app. Every note
// route sits behind the auth gate.
func (h *NoteHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	noteRoutes := router.Group("/notes", authRequired)
	noteRoutes.Get("/fetchallnotes", h.HandleFetchAllNotes)
	noteRoutes.Post("/addnote", h.HandleAddNote)
	noteRoutes.Put("/updatenote/:id", h.HandleUpdateNote)
	noteRoutes.Delete("/deletenote/:id", h.HandleDeleteNote)
}

// AddNoteRequest represents the request body for note creation.
type AddNoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Tag         string `json:"tag"`
}

// UpdateNoteRequest represents the request body for note updates. Every
// field is optional; empty fields are left unchanged.
type UpdateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// HandleFetchAllNotes returns all notes owned by the authenticated user.
func (h *NoteHandler) HandleFetchAllNotes(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	notes, err := h.noteService.ListNotes(userID)
	if err != nil {
		log.Printf("Error fetching notes: %v", err)
		return response.Failure(c, fiber.StatusInternalServerError, response.NameInternal, "Internal server error")
	}

	if len(notes) == 0 {
		log.Println("No notes found")
		return response.Success(c, fiber.StatusOK, fiber.Map{"notes": notes, "msg": "No notes found"})
	}

	log.Println("Note(s) fetched successfully")
	return response.Success(c, fiber.StatusOK, fiber.Map{"notes": notes})
}

// HandleAddNote creates a note owned by the authenticated user.
func (h *NoteHandler) HandleAddNote(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing addnote request body: %v", err)
		return response.Failure(c, fiber.StatusBadRequest, response.NameValidation, "Invalid request body")
	}

	if msg, ok := validateStruct(req); !ok {
		return response.Failure(c, fiber.StatusBadRequest, response.NameValidation, msg)
	}

	note, err := h.noteService.CreateNote(userID, req.Title, req.Description, req.Tag)
	if err != nil {
		log.Printf("Error creating note: %v", err)
		return response.Failure(c, fiber.StatusInternalServerError, response.NameInternal, "Internal server error")
	}

	log.Println("Note created successfully")
	return response.Success(c, fiber.StatusOK, fiber.Map{"notes": note})
}

// HandleUpdateNote updates a note the authenticated user owns. A valid
// token for a different user gets the 401 authentication envelope, matching
// the contract existing clients rely on.
func (h *NoteHandler) HandleUpdateNote(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	noteID := c.Params("id")

	var req UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing updatenote request body: %v", err)
		return response.Failure(c, fiber.StatusBadRequest, response.NameValidation, "Invalid request body")
	}

	note, err := h.noteService.UpdateNote(userID, noteID, req.Title, req.Description, req.Tag)
	if err != nil {
		return h.noteFailure(c, "updating", err)
	}

	log.Println("Note updated successfully")
	return response.Success(c, fiber.StatusOK, fiber.Map{"note": note})
}

// HandleDeleteNote deletes a note the authenticated user owns.
func (h *NoteHandler) HandleDeleteNote(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	noteID := c.Params("id")

	if err := h.noteService.DeleteNote(userID, noteID); err != nil {
		return h.noteFailure(c, "deleting", err)
	}

	log.Println("Note deleted successfully")
	return response.Success(c, fiber.StatusOK, fiber.Map{"msg": "Note has been deleted successfully"})
}

// noteFailure maps note service errors to the wire envelope.
func (h *NoteHandler) noteFailure(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		log.Println("Note not found")
		return response.Failure(c, fiber.StatusNotFound, response.NameNotFound, "Note not found")
	case errors.Is(err, services.ErrNotOwner):
		log.Println("Authentication error. Please log in again.")
		return response.AuthFailure(c, "Authentication error. Please log in again.")
	default:
		log.Printf("Error %s note: %v", action, err)
		return response.Failure(c, fiber.StatusInternalServerError, response.NameInternal, "Internal server error")
	}
}
