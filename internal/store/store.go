// Package store holds the ordered message sequence for the active
// conversation.
package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chattatrader/chattacli/internal/models"
)

// MessageStore is the append-only message sequence backing the chat view.
// There is no update-in-place: a changed outcome (a trade completing, say)
// arrives as a new appended message. Transport-goroutine appends and
// UI appends serialize on the internal mutex, so commit order is arrival
// order.
type MessageStore struct {
	mu       sync.Mutex
	messages []models.Message

	spillDir string
	spilled  []string
	log      zerolog.Logger
}

// New creates an empty MessageStore. spillDir receives attachment payloads
// materialized for playback/preview; pass "" to use the OS temp dir.
func New(spillDir string, log zerolog.Logger) *MessageStore {
	if spillDir == "" {
		spillDir = os.TempDir()
	}
	return &MessageStore{spillDir: spillDir, log: log}
}

// Append adds one message to the end of the sequence.
func (s *MessageStore) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spillAttachment(&msg)
	s.messages = append(s.messages, msg)
}

// ReplaceAll swaps in a different conversation's messages, releasing every
// attachment file spilled for the previous one.
func (s *MessageStore) ReplaceAll(msgs []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseSpilled()
	s.messages = make([]models.Message, 0, len(msgs))
	for _, msg := range msgs {
		s.spillAttachment(&msg)
		s.messages = append(s.messages, msg)
	}
}

// Current returns the messages in append order. The returned slice is a
// snapshot; callers may not see later appends through it.
func (s *MessageStore) Current() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of stored messages.
func (s *MessageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Close releases any remaining spilled attachment files.
func (s *MessageStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseSpilled()
}

// spillAttachment writes an attachment payload to disk so the renderer has
// a path to point at. Failure leaves the message intact minus its preview.
// Caller holds mu.
func (s *MessageStore) spillAttachment(msg *models.Message) {
	att := msg.Attachment
	if att == nil || len(att.Data) == 0 {
		return
	}

	ext := ".bin"
	switch att.Kind {
	case models.AttachmentAudio:
		ext = ".wav"
	case models.AttachmentImage:
		ext = ".png"
	}

	path := filepath.Join(s.spillDir, "chatta-"+uuid.NewString()+ext)
	if err := os.WriteFile(path, att.Data, 0o600); err != nil {
		s.log.Warn().Err(err).Str("kind", string(att.Kind)).Msg("attachment spill failed")
		return
	}
	msg.Content = path
	s.spilled = append(s.spilled, path)
}

// releaseSpilled deletes spill files for the outgoing message set.
// Caller holds mu.
func (s *MessageStore) releaseSpilled() {
	for _, path := range s.spilled {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("attachment release failed")
		}
	}
	s.spilled = nil
}
