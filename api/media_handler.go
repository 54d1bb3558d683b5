package api

import (
	"net/http"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  mediaUploader
}

func newMediaHandler(uploader mediaUploader) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// MediaResponse carries the public URL of an uploaded image
type MediaResponse struct {
	URL string `json:"url"`
}

// uploadMedia stores an image for use in sections and projects
// @Summary Upload media
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Param folder formData string false "Destination folder"
// @Success 201 {object} MediaResponse
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 415 {object} ErrorResponse "Unsupported media type"
// @Failure 503 {object} ErrorResponse "Storage not configured"
// @Router /admin/media [post]
func (h mediaHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewBackendUnavailableError("media upload", errs.NewConfigMissingError("STORAGE_BUCKET")))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, services.MaxMediaSize+maxPayloadSize)
		if err := r.ParseMultipartForm(services.MaxMediaSize); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("media", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			sniff := make([]byte, 512)
			n, _ := file.Read(sniff)
			contentType = http.DetectContentType(sniff[:n])
			if _, err := file.Seek(0, 0); err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("media", err))
				return
			}
		}

		url, err := h.uploader.Upload(r.Context(), r.FormValue("folder"), contentType, file, header.Size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, MediaResponse{URL: url})
	}
}
