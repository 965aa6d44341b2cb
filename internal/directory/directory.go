// Package directory provides the conversation list: selection, filtering
// and local JSON persistence.
package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chattatrader/chattacli/internal/models"
)

// Directory manages the pre-fetched set of conversations. Selection is
// synchronous: conversations are loaded up front and Select only picks
// among them.
type Directory struct {
	baseDir string
	mu      sync.RWMutex
	active  string
}

// Open creates a Directory rooted at baseDir, creating the conversations
// directory and seeding the sample set when none exist yet.
func Open(baseDir string) (*Directory, error) {
	convDir := filepath.Join(baseDir, "conversations")
	if err := os.MkdirAll(convDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create conversations directory: %w", err)
	}

	d := &Directory{baseDir: convDir}

	convs, err := d.List()
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		for _, conv := range models.SampleConversations() {
			if err := d.save(conv); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// List returns all conversations, most recently updated first.
func (d *Directory) List() ([]*models.Conversation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries, err := os.ReadDir(d.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversations directory: %w", err)
	}

	var conversations []*models.Conversation
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		conv, err := d.load(id)
		if err != nil {
			continue // Skip corrupted files
		}
		conversations = append(conversations, conv)
	}

	sort.Slice(conversations, func(i, j int) bool {
		if conversations[i].UpdatedAt.Equal(conversations[j].UpdatedAt) {
			return conversations[i].Title < conversations[j].Title
		}
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})

	return conversations, nil
}

// Filter returns the conversations whose title contains the substring,
// case-insensitively. An empty substring matches everything.
func (d *Directory) Filter(substring string) ([]*models.Conversation, error) {
	convs, err := d.List()
	if err != nil {
		return nil, err
	}
	if substring == "" {
		return convs, nil
	}

	needle := strings.ToLower(substring)
	var matched []*models.Conversation
	for _, conv := range convs {
		if strings.Contains(strings.ToLower(conv.Title), needle) {
			matched = append(matched, conv)
		}
	}
	return matched, nil
}

// Select marks the conversation active and returns it. The caller replaces
// the visible message sequence wholesale with the returned messages.
func (d *Directory) Select(id string) (*models.Conversation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	conv, err := d.load(id)
	if err != nil {
		return nil, err
	}
	d.active = id
	return conv, nil
}

// ActiveID returns the id of the currently selected conversation, or "".
func (d *Directory) ActiveID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.active
}

// AppendMessage persists a message onto a conversation.
func (d *Directory) AppendMessage(id string, msg models.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	conv, err := d.load(id)
	if err != nil {
		return err
	}

	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now()
	return d.save(conv)
}

// Internal methods

func (d *Directory) conversationPath(id string) string {
	return filepath.Join(d.baseDir, id+".json")
}

func (d *Directory) load(id string) (*models.Conversation, error) {
	data, err := os.ReadFile(d.conversationPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("conversation not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	var conv models.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to parse conversation: %w", err)
	}

	return &conv, nil
}

func (d *Directory) save(conv *models.Conversation) error {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := os.WriteFile(d.conversationPath(conv.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write conversation: %w", err)
	}
	return nil
}
