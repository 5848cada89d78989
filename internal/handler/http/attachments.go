package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/internal/utils"
	"github.com/leandrawisnu/noteshare/models"
)

// maxUploadMemory caps how much of a multipart body is held in memory before
// spilling to temp files. The service layer enforces the actual size limit.
const maxUploadMemory = 32 << 20

func (h *Handler) uploadAttachment(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		utils.WriteJSONError(w, service.ErrValidationNoFile.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("multipart form has no file field")
		utils.WriteJSONError(w, service.ErrValidationNoFile.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	upload := service.AttachmentUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}

	attachment, err := h.services.AttachmentService.UploadAttachment(ctx, noteID, userID, upload)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Int64("user_id", userID).Msg("error occurred during attachment upload")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.UploadAttachmentResponse{ID: attachment.ID, URL: attachment.URL}, http.StatusCreated)
}

func (h *Handler) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	attachmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid attachment id")
		utils.WriteJSONError(w, ErrInvalidID.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AttachmentService.DeleteAttachment(ctx, attachmentID, userID); err != nil {
		log.Err(err).Int64("attachment_id", attachmentID).Int64("user_id", userID).Msg("error occurred during attachment deletion")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
