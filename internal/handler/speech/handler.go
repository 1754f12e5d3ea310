// Package speech exposes the one-shot audio conversion endpoints. Uploaded
// audio and synthesized text pass straight through to the provider; nothing
// is stored or logged beyond byte counts.
package speech

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mindwell-labs/mindwell/backend/internal/provider"
	"github.com/mindwell-labs/mindwell/backend/pkg/utils"
)

// ConversionService abstracts the conversion provider so the handlers can
// be tested with a fake implementation.
type ConversionService interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Format() string
}

// Handler serves the speech conversion endpoints.
type Handler struct {
	svc ConversionService
}

// New creates the conversion handler.
func New(svc ConversionService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the conversion endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/stt", h.handleTranscribe)
	r.Post("/tts", h.handleSynthesize)
}

func (h *Handler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read audio upload")
		return
	}

	log.Printf("[speech] transcribing upload bytes=%d", len(audio))

	text, err := h.svc.Transcribe(r.Context(), audio, header.Filename)
	if err != nil {
		log.Printf("[speech] transcription failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, provider.Normalize(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, err := h.svc.Synthesize(r.Context(), payload.Text, payload.Voice)
	if err != nil {
		log.Printf("[speech] synthesis failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, provider.Normalize(err))
		return
	}

	format := h.svc.Format()
	contentType := "audio/" + format
	if format == "mp3" {
		contentType = "audio/mpeg"
	}

	log.Printf("[speech] synthesized audio bytes=%d format=%s", len(audio), format)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.Header().Set("Content-Disposition", "inline; filename=reply."+format)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("[speech] failed to write audio response: %v", err)
	}
}
