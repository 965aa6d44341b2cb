package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chattatrader/chattacli/internal/models"
)

func TestAppendPreservesOrder(t *testing.T) {
	s := New(t.TempDir(), zerolog.Nop())
	defer s.Close()

	for _, content := range []string{"first", "second", "third"} {
		s.Append(models.NewTextMessage("chat_1", content))
	}

	got := s.Current()
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3", len(got))
	}
	want := []string{"first", "second", "third"}
	for i, msg := range got {
		if msg.Content != want[i] {
			t.Errorf("message %d content = %q, want %q", i, msg.Content, want[i])
		}
	}
}

func TestCurrentIsSnapshot(t *testing.T) {
	s := New(t.TempDir(), zerolog.Nop())
	defer s.Close()

	s.Append(models.NewTextMessage("chat_1", "one"))
	snap := s.Current()
	s.Append(models.NewTextMessage("chat_1", "two"))

	if len(snap) != 1 {
		t.Errorf("snapshot grew to %d messages after append", len(snap))
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestReplaceAllSwapsMessages(t *testing.T) {
	s := New(t.TempDir(), zerolog.Nop())
	defer s.Close()

	s.Append(models.NewTextMessage("chat_1", "old"))
	s.ReplaceAll([]models.Message{
		models.NewTextMessage("chat_2", "a"),
		models.NewTextMessage("chat_2", "b"),
	})

	got := s.Current()
	if len(got) != 2 {
		t.Fatalf("Len = %d, want 2", len(got))
	}
	if got[0].Content != "a" || got[1].Content != "b" {
		t.Errorf("unexpected contents after ReplaceAll: %q, %q", got[0].Content, got[1].Content)
	}
}

func TestAppendSpillsAttachment(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zerolog.Nop())
	defer s.Close()

	att := &models.Attachment{Kind: models.AttachmentAudio, MIME: "audio/wav", Data: []byte("RIFFdata")}
	s.Append(models.NewAttachmentMessage("chat_1", att))

	got := s.Current()
	if len(got) != 1 {
		t.Fatalf("Len = %d, want 1", len(got))
	}
	path := got[0].Content
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("spill path %q not under %q", path, dir)
	}
	if !strings.HasSuffix(path, ".wav") {
		t.Errorf("audio spill path = %q, want .wav suffix", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading spill file: %v", err)
	}
	if string(data) != "RIFFdata" {
		t.Errorf("spill file content = %q, want %q", data, "RIFFdata")
	}
}

func TestReplaceAllReleasesSpilled(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zerolog.Nop())
	defer s.Close()

	att := &models.Attachment{Kind: models.AttachmentImage, MIME: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
	s.Append(models.NewAttachmentMessage("chat_1", att))
	path := s.Current()[0].Content

	s.ReplaceAll(nil)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("spill file %q still exists after ReplaceAll", path)
	}
}

func TestCloseReleasesSpilled(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, zerolog.Nop())

	att := &models.Attachment{Kind: models.AttachmentAudio, MIME: "audio/wav", Data: []byte("x")}
	s.Append(models.NewAttachmentMessage("chat_1", att))
	s.Close()

	entries, err := filepath.Glob(filepath.Join(dir, "chatta-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d spill files remain after Close", len(entries))
	}
}
