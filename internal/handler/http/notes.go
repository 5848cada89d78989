package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/utils"
	"github.com/leandrawisnu/noteshare/models"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// ownership is taken from the token, never from the request body
	note.OwnerID = userID

	createdNote, err := h.services.NoteService.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Msg("error occurred during note creation")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.CreateNoteResponse{ID: createdNote.ID, Note: createdNote}, http.StatusCreated)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	// optional filter: /api/notes?owner_id=42
	var ownerID int64
	if ownerParam := r.URL.Query().Get("owner_id"); ownerParam != "" {
		parsed, err := strconv.ParseInt(ownerParam, 10, 64)
		if err != nil {
			log.Err(err).Str("owner_id", ownerParam).Msg("invalid owner_id query param")
			utils.WriteJSONError(w, ErrInvalidID.Error(), http.StatusBadRequest)
			return
		}
		ownerID = parsed
	}

	notes, err := h.services.NoteService.ListNotes(ctx, ownerID)
	if err != nil {
		log.Err(err).Msg("error occurred during notes listing")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	if notes == nil {
		notes = []models.Note{}
	}

	utils.WriteJSON(w, models.NotesResponse{Notes: notes}, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	noteID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid note id")
		utils.WriteJSONError(w, ErrInvalidID.Error(), http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.GetNote(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("error occurred during note retrieval")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.NoteResponse{Note: note}, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid note id")
		utils.WriteJSONError(w, ErrInvalidID.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.DeleteNote(ctx, noteID, userID); err != nil {
		log.Err(err).Int64("note_id", noteID).Int64("user_id", userID).Msg("error occurred during note deletion")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
