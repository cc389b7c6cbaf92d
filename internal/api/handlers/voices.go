package handlers

import (
	"net/http"

	"github.com/nkapoor/visionvoice/internal/assistant"
)

// VoicesHandler exposes the delegate's voice catalog. Nothing is cached;
// every request reads the catalog fresh from the provider.
type VoicesHandler struct {
	delegate assistant.Delegate
	expose   bool
}

func NewVoicesHandler(delegate assistant.Delegate, exposeDetails bool) *VoicesHandler {
	return &VoicesHandler{delegate: delegate, expose: exposeDetails}
}

// Voices returns the full catalog keyed by voice id.
func (h *VoicesHandler) Voices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.delegate.Voices(r.Context())
	if err != nil {
		failInternal(w, r, "An error occurred while retrieving voices.", err, h.expose)
		return
	}
	writeJSON(w, http.StatusOK, voices)
}

type voiceEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Language string `json:"language"`
}

// VoicesByLanguage returns the catalog grouped by language, each entry
// carrying the full descriptor plus its id. Ids unknown to the flat catalog
// are skipped, never invented, so flattening the groups always yields the
// same id set as Voices.
func (h *VoicesHandler) VoicesByLanguage(w http.ResponseWriter, r *http.Request) {
	byLanguage, err := h.delegate.VoicesByLanguage(r.Context())
	if err != nil {
		failInternal(w, r, "An error occurred while retrieving voices by language.", err, h.expose)
		return
	}
	voices, err := h.delegate.Voices(r.Context())
	if err != nil {
		failInternal(w, r, "An error occurred while retrieving voices by language.", err, h.expose)
		return
	}

	response := make(map[string][]voiceEntry, len(byLanguage))
	for language, ids := range byLanguage {
		entries := make([]voiceEntry, 0, len(ids))
		for _, id := range ids {
			v, ok := voices[id]
			if !ok {
				continue
			}
			entries = append(entries, voiceEntry{
				ID:       id,
				Name:     v.Name,
				Gender:   v.Gender,
				Language: v.Language,
			})
		}
		response[language] = entries
	}

	writeJSON(w, http.StatusOK, response)
}
