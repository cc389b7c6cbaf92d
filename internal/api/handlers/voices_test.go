package handlers

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/nkapoor/visionvoice/internal/upload"
)

func newVoicesHandler(t *testing.T) (*VoicesHandler, *stubDelegate) {
	t.Helper()
	stub := &stubDelegate{store: upload.NewStore(t.TempDir(), 16_000_000)}
	return NewVoicesHandler(stub, false), stub
}

func TestVoicesReturnsCatalog(t *testing.T) {
	h, _ := newVoicesHandler(t)

	rec := httptest.NewRecorder()
	h.Voices(rec, httptest.NewRequest(http.MethodGet, "/api/voices", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]struct {
		Name     string `json:"name"`
		Gender   string `json:"gender"`
		Language string `json:"language"`
	}
	decodeBody(t, rec, &body)
	if v, ok := body["af_heart"]; !ok || v.Name != "Heart" || v.Gender != "Female" {
		t.Errorf("af_heart descriptor = %+v", body["af_heart"])
	}
}

func TestVoicesByLanguageMatchesVoices(t *testing.T) {
	h, _ := newVoicesHandler(t)

	rec := httptest.NewRecorder()
	h.Voices(rec, httptest.NewRequest(http.MethodGet, "/api/voices", nil))
	var flat map[string]struct {
		Name string `json:"name"`
	}
	decodeBody(t, rec, &flat)

	rec = httptest.NewRecorder()
	h.VoicesByLanguage(rec, httptest.NewRequest(http.MethodGet, "/api/voices_by_language", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var grouped map[string][]struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Language string `json:"language"`
	}
	decodeBody(t, rec, &grouped)

	var flattened []string
	for language, entries := range grouped {
		for _, e := range entries {
			flattened = append(flattened, e.ID)
			if e.Language != language {
				t.Errorf("voice %s grouped under %q but labeled %q", e.ID, language, e.Language)
			}
		}
	}

	var want []string
	for id := range flat {
		want = append(want, id)
	}
	sort.Strings(flattened)
	sort.Strings(want)
	if len(flattened) != len(want) {
		t.Fatalf("grouped ids %v != flat ids %v", flattened, want)
	}
	for i := range want {
		if flattened[i] != want[i] {
			t.Fatalf("grouped ids %v != flat ids %v", flattened, want)
		}
	}
}
