package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/notevault/internal/auth"
	"github.com/dukerupert/notevault/internal/model"
	"github.com/dukerupert/notevault/internal/store"
	"github.com/dukerupert/notevault/internal/websocket"
)

type NoteHandler struct {
	notes  *store.NoteStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, hub *websocket.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: ns, hub: hub, logger: logger}
}

func (h *NoteHandler) broadcast(owner string, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(owner, msg)
	}
}

type createNoteRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := auth.Owner(r.Context())

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	note, err := h.notes.Create(r.Context(), owner, store.CreateNote{
		Title:     req.Title,
		Content:   req.Content,
		ID:        req.ID,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			writeError(w, http.StatusBadRequest, "note title or content is required")
			return
		}
		h.logger.Error("create note", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	h.broadcast(owner, websocket.NewMessage("note", "created", note.ID))
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := auth.Owner(r.Context())

	notes, err := h.notes.List(r.Context(), owner)
	if err != nil {
		h.logger.Error("list notes", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner := auth.Owner(r.Context())
	id := r.PathValue("id")

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == nil && req.Content == nil {
		writeError(w, http.StatusBadRequest, "title or content is required")
		return
	}

	note, err := h.notes.Update(r.Context(), owner, id, store.UpdateNote{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		h.logger.Error("update note", "owner", owner, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update note")
		return
	}

	h.broadcast(owner, websocket.NewMessage("note", "updated", note.ID))
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := auth.Owner(r.Context())
	id := r.PathValue("id")

	if err := h.notes.Delete(r.Context(), owner, id); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		h.logger.Error("delete note", "owner", owner, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}

	h.broadcast(owner, websocket.NewMessage("note", "deleted", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}
