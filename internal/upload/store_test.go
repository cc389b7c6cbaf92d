package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"audio.wav", "audio.wav"},
		{"my recording.wav", "my_recording.wav"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"résumé.png", "r_sum_.png"},
		{"...", "file"},
		{"", "file"},
		{"a b  c.mp3", "a_b_c.mp3"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveProducesDistinctPaths(t *testing.T) {
	s := NewStore(t.TempDir(), 1024)

	p1, err := s.Save("same.wav", strings.NewReader("one"))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.Save("same.wav", strings.NewReader("two"))
	if err != nil {
		t.Fatal(err)
	}

	if p1 == p2 {
		t.Fatalf("identical original names stored at the same path %q", p1)
	}
	for _, p := range []string{p1, p2} {
		if !strings.HasSuffix(p, "_same.wav") {
			t.Errorf("stored name %q lost the original name", p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("stored file missing: %v", err)
		}
	}
}

func TestSaveRejectsOversize(t *testing.T) {
	s := NewStore(t.TempDir(), 8)

	if _, err := s.Save("big.bin", strings.NewReader("123456789")); err == nil {
		t.Fatal("expected error for payload over the cap")
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("partial file left behind: %v", entries)
	}
}

func TestVerifyNonEmpty(t *testing.T) {
	s := NewStore(t.TempDir(), 1024)

	if err := s.VerifyNonEmpty("missing.mp3"); err == nil {
		t.Error("expected error for missing file")
	}

	if err := os.WriteFile(filepath.Join(s.Dir(), "empty.mp3"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.VerifyNonEmpty("empty.mp3"); err == nil {
		t.Error("expected error for empty file")
	}

	name, err := s.WriteGenerated("ok.mp3", []byte("bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.VerifyNonEmpty(name); err != nil {
		t.Errorf("VerifyNonEmpty(%q) = %v", name, err)
	}
}
