package store

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Citation is a scored reference attached to an assistant message.
// Immutable once created.
type Citation struct {
	Source string  `json:"source"`
	URL    string  `json:"url"`
	Score  float64 `json:"score"` // [0,1]
}

// Message is a single chat turn. Immutable once appended; ordering within
// a conversation is append order.
type Message struct {
	ID        string     `json:"id"`
	Role      string     `json:"role"` // "user" | "assistant"
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Tokens    int        `json:"tokens,omitempty"`
}

// Conversation is a titled, ordered collection of messages with tags and
// pin/update metadata.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	Tags      []string  `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Pinned    bool      `json:"pinned"`
}

// ConversationPatch carries partial field updates. Nil fields are left
// untouched by UpdateConversation.
type ConversationPatch struct {
	Title  *string   `json:"title,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
	Pinned *bool     `json:"pinned,omitempty"`
}

// ConversationStore owns the conversation slice of client state. It is an
// explicit injectable container: callers construct isolated instances
// instead of sharing a process-wide singleton. All mutations run to
// completion under the lock, so no partial update is ever observable.
//
// The store never reorders or deduplicates messages; callers are
// responsible for generating unique ids. Unknown-id mutations are silent
// no-ops.
type ConversationStore struct {
	mu sync.RWMutex

	conversations []Conversation
	activeID      string
	loading       bool
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// AddConversation prepends, keeping the list in most-recent-first order.
func (s *ConversationStore) AddConversation(c Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]Conversation{c}, s.conversations...)
}

// UpdateConversation merges the patch into the matching record. No-op if
// the id is unknown.
func (s *ConversationStore) UpdateConversation(id string, patch ConversationPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID != id {
			continue
		}
		if patch.Title != nil {
			s.conversations[i].Title = *patch.Title
		}
		if patch.Tags != nil {
			s.conversations[i].Tags = append([]string(nil), (*patch.Tags)...)
		}
		if patch.Pinned != nil {
			s.conversations[i].Pinned = *patch.Pinned
		}
		return
	}
}

// DeleteConversation removes the matching record. If it was the active
// conversation, the active pointer is cleared.
func (s *ConversationStore) DeleteConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			return
		}
	}
}

// SetActiveConversation changes the current conversation pointer. The id
// is not validated against the list.
func (s *ConversationStore) SetActiveConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// AddMessage appends to the target conversation and refreshes its
// UpdatedAt. No-op if the conversation is unknown.
func (s *ConversationStore) AddMessage(conversationID string, m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			s.conversations[i].Messages = append(s.conversations[i].Messages, m)
			s.conversations[i].UpdatedAt = m.CreatedAt
			return
		}
	}
}

func (s *ConversationStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Conversations returns a copy of the list in store order.
func (s *ConversationStore) Conversations() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Get returns the conversation with the given id, or false.
func (s *ConversationStore) Get(id string) (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			return s.conversations[i], true
		}
	}
	return Conversation{}, false
}

// ActiveConversation returns the current pointer, "" when unset.
func (s *ConversationStore) ActiveConversation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

func (s *ConversationStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// conversationSnapshot is the persisted wire shape. Loading is transient
// UI state and deliberately not part of it.
type conversationSnapshot struct {
	Conversations []Conversation `json:"conversations"`
	ActiveID      string         `json:"active_conversation"`
}

// Snapshot serializes the persisted fields. Saving it somewhere durable is
// the host's explicit act, not a hidden side effect of mutations.
func (s *ConversationStore) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(conversationSnapshot{
		Conversations: s.conversations,
		ActiveID:      s.activeID,
	})
}

// Restore replaces the store contents from a snapshot. The snapshot is
// trusted as-is; there is no schema versioning.
func (s *ConversationStore) Restore(data []byte) error {
	var snap conversationSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = snap.Conversations
	s.activeID = snap.ActiveID
	s.loading = false
	return nil
}
