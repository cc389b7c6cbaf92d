package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nkapoor/visionvoice/internal/assistant"
	"github.com/nkapoor/visionvoice/internal/upload"
)

const (
	defaultVoice = "af_heart"
	defaultSpeed = 1.0

	// Floor applied to the requested speed when high-performance mode is on.
	// A policy override, not a user preference.
	highPerformanceMinSpeed = 1.2
)

// AssistantHandler serves the transcription, query answering, and speech
// synthesis endpoints.
type AssistantHandler struct {
	delegate assistant.Delegate
	store    *upload.Store
	maxBytes int64
	expose   bool
}

func NewAssistantHandler(delegate assistant.Delegate, store *upload.Store, maxBytes int64, exposeDetails bool) *AssistantHandler {
	return &AssistantHandler{
		delegate: delegate,
		store:    store,
		maxBytes: maxBytes,
		expose:   exposeDetails,
	}
}

// effectiveSpeed clamps the requested speed to the high-performance floor
// when the flag is set: max(requested, 1.2).
func effectiveSpeed(speed float64, highPerformance bool) float64 {
	if highPerformance && speed < highPerformanceMinSpeed {
		return highPerformanceMinSpeed
	}
	return speed
}

// Transcribe accepts a multipart audio file, stores it, and returns its
// transcription along with the stored path for later requests.
func (h *AssistantHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequest(w, "No audio file provided")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		badRequest(w, "No audio file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		badRequest(w, "Empty audio filename")
		return
	}

	audioPath, err := h.store.Save(header.Filename, file)
	if err != nil {
		failInternal(w, r, "An error occurred during transcription.", err, h.expose)
		return
	}

	transcription, err := h.delegate.Transcribe(r.Context(), audioPath)
	if err != nil {
		failInternal(w, r, "An error occurred during transcription.", err, h.expose)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcription": transcription,
		"audio_path":    audioPath,
	})
}

// UploadImage stores an image and returns its server-side path, which later
// generate_response calls reference. Exists for the browser client, which
// cannot hand over local file paths.
func (h *AssistantHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequest(w, "No image file provided")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		badRequest(w, "No image file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		badRequest(w, "Empty image filename")
		return
	}

	imagePath, err := h.store.Save(header.Filename, file)
	if err != nil {
		failInternal(w, r, "An error occurred while uploading the image.", err, h.expose)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_path": imagePath})
}

// GenerateResponse answers a query about an already-uploaded image. The
// image is referenced by path, not re-uploaded.
func (h *AssistantHandler) GenerateResponse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "No image provided")
		return
	}

	imagePath := r.FormValue("image_path")
	query := r.FormValue("query")

	if imagePath == "" {
		badRequest(w, "No image provided")
		return
	}
	if query == "" {
		badRequest(w, "No query provided")
		return
	}

	response, err := h.delegate.AnswerQuery(r.Context(), imagePath, query)
	if err != nil {
		failInternal(w, r, "An error occurred while generating the response.", err, h.expose)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

type textToSpeechRequest struct {
	Text            string   `json:"text"`
	Voice           string   `json:"voice,omitempty"`
	Speed           *float64 `json:"speed,omitempty"`
	HighPerformance bool     `json:"high_performance,omitempty"`
}

// TextToSpeech synthesizes the given text and returns the name of the audio
// file written into the upload directory. The result is verified on disk
// before success is reported.
func (h *AssistantHandler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req textToSpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "No text provided")
		return
	}
	if req.Text == "" {
		badRequest(w, "No text provided")
		return
	}

	voice := req.Voice
	if voice == "" {
		voice = defaultVoice
	}
	speed := defaultSpeed
	if req.Speed != nil {
		speed = *req.Speed
	}
	speed = effectiveSpeed(speed, req.HighPerformance)

	audioName, err := h.delegate.Synthesize(r.Context(), req.Text, voice, speed)
	if err != nil {
		failInternal(w, r, "An error occurred during text-to-speech conversion.", err, h.expose)
		return
	}

	if err := h.store.VerifyNonEmpty(audioName); err != nil {
		failInternal(w, r, "Audio generation failed. The audio file is missing or empty.", err, h.expose)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"audio_response": audioName})
}

// Process runs the full pipeline: store both uploads, transcribe the audio,
// answer the transcribed query about the image, synthesize the answer. Any
// stage failure aborts the request; already-written files stay on disk.
func (h *AssistantHandler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequest(w, "No image file provided")
		return
	}

	imageFile, imageHeader, err := r.FormFile("image")
	if err != nil {
		badRequest(w, "No image file provided")
		return
	}
	defer imageFile.Close()
	if imageHeader.Filename == "" {
		badRequest(w, "Empty image filename")
		return
	}

	audioFile, audioHeader, err := r.FormFile("audio")
	if err != nil {
		badRequest(w, "No audio file provided")
		return
	}
	defer audioFile.Close()
	if audioHeader.Filename == "" {
		badRequest(w, "Empty audio filename")
		return
	}

	highPerformance := strings.EqualFold(r.FormValue("high_performance"), "true")
	voice := r.FormValue("voice")
	if voice == "" {
		voice = defaultVoice
	}
	speed := defaultSpeed
	if v := r.FormValue("speed"); v != "" {
		speed, err = strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(w, "Invalid speed value")
			return
		}
	}
	speed = effectiveSpeed(speed, highPerformance)

	imagePath, err := h.store.Save(imageHeader.Filename, imageFile)
	if err != nil {
		failInternal(w, r, "An internal error occurred. Please try again later.", err, h.expose)
		return
	}
	audioPath, err := h.store.Save(audioHeader.Filename, audioFile)
	if err != nil {
		failInternal(w, r, "An internal error occurred. Please try again later.", err, h.expose)
		return
	}

	transcription, err := h.delegate.Transcribe(r.Context(), audioPath)
	if err != nil {
		failInternal(w, r, "An internal error occurred. Please try again later.", err, h.expose)
		return
	}

	response, err := h.delegate.AnswerQuery(r.Context(), imagePath, transcription)
	if err != nil {
		failInternal(w, r, "An internal error occurred. Please try again later.", err, h.expose)
		return
	}

	audioName, err := h.delegate.Synthesize(r.Context(), response, voice, speed)
	if err != nil {
		failInternal(w, r, "An internal error occurred. Please try again later.", err, h.expose)
		return
	}
	if err := h.store.VerifyNonEmpty(audioName); err != nil {
		failInternal(w, r, "Audio generation failed. The audio file is missing or empty.", err, h.expose)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transcription":  transcription,
		"response":       response,
		"audio_response": audioName,
	})
}

// Audio serves a generated audio file from the upload directory so the
// browser client can play synthesis results.
func (h *AssistantHandler) Audio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		badRequest(w, "Invalid audio name")
		return
	}

	if err := h.store.VerifyNonEmpty(name); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Audio file not found"})
		return
	}

	http.ServeFile(w, r, h.store.Path(name))
}
