package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddConversationPrepends(t *testing.T) {
	s := NewConversationStore()

	for i := 0; i < 5; i++ {
		s.AddConversation(Conversation{
			ID:        fmt.Sprintf("c%d", i),
			Title:     fmt.Sprintf("Conversación %d", i),
			UpdatedAt: time.Now(),
		})
	}

	got := s.Conversations()
	require.Len(t, got, 5)
	// Strict reverse-chronological-of-insertion order.
	for i, c := range got {
		assert.Equal(t, fmt.Sprintf("c%d", 4-i), c.ID)
	}
}

func TestDeleteConversationClearsActivePointer(t *testing.T) {
	s := NewConversationStore()
	s.AddConversation(Conversation{ID: "a"})
	s.AddConversation(Conversation{ID: "b"})

	s.SetActiveConversation("a")
	s.DeleteConversation("a")
	assert.Empty(t, s.ActiveConversation(), "deleting the active conversation must clear the pointer")

	s.SetActiveConversation("b")
	s.DeleteConversation("nope")
	assert.Equal(t, "b", s.ActiveConversation(), "deleting another id must leave the pointer unchanged")
}

func TestAddMessageUnknownConversationIsNoOp(t *testing.T) {
	s := NewConversationStore()
	s.AddConversation(Conversation{ID: "c1", Title: "Nueva Conversación", Messages: []Message{}})

	before, err := s.Snapshot()
	require.NoError(t, err)

	s.AddMessage("missing", Message{ID: "m1", Role: MessageRoleUser, Content: "hola", CreatedAt: time.Now()})

	after, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after, "mutation on an unknown id must leave state byte-for-byte unchanged")
}

func TestUpdateConversationMergesPartialFields(t *testing.T) {
	s := NewConversationStore()
	s.AddConversation(Conversation{ID: "c1", Title: "Nueva Conversación", Tags: []string{"mifid"}})

	title := "Análisis MiFID II"
	pinned := true
	s.UpdateConversation("c1", ConversationPatch{Title: &title, Pinned: &pinned})

	c, ok := s.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "Análisis MiFID II", c.Title)
	assert.True(t, c.Pinned)
	assert.Equal(t, []string{"mifid"}, c.Tags, "untouched fields survive partial updates")

	// Unknown id: silent no-op.
	s.UpdateConversation("ghost", ConversationPatch{Title: &title})
	assert.Len(t, s.Conversations(), 1)
}

func TestChatScenarioUserThenAssistant(t *testing.T) {
	s := NewConversationStore()
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s.AddConversation(Conversation{
		ID:        "c1",
		Title:     "Nueva Conversación",
		Messages:  []Message{},
		UpdatedAt: created,
	})

	first := created.Add(5 * time.Second)
	second := created.Add(9 * time.Second)

	s.AddMessage("c1", Message{ID: "m1", Role: MessageRoleUser, Content: "hola", CreatedAt: first})
	s.AddMessage("c1", Message{
		ID: "m2", Role: MessageRoleAssistant, Content: "hola, ¿en qué ayudo?",
		Citations: []Citation{{Source: "MiFID II - Artículo 25", URL: "#", Score: 0.95}},
		CreatedAt: second,
	})

	c, ok := s.Get("c1")
	require.True(t, ok)
	require.Len(t, c.Messages, 2)
	assert.Equal(t, MessageRoleUser, c.Messages[0].Role)
	assert.Equal(t, MessageRoleAssistant, c.Messages[1].Role)
	assert.Equal(t, second, c.UpdatedAt, "UpdatedAt advances to the time of the last append")
}

func TestConversationSnapshotRoundTrip(t *testing.T) {
	s := NewConversationStore()
	s.AddConversation(Conversation{ID: "c2", Title: "Solvencia II", Tags: []string{"pilar3"}})
	s.AddConversation(Conversation{ID: "c1", Title: "Nueva Conversación", Pinned: true})
	s.AddMessage("c1", Message{ID: "m1", Role: MessageRoleUser, Content: "hola", CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)})
	s.SetActiveConversation("c1")
	s.SetLoading(true) // transient, must not persist

	data, err := s.Snapshot()
	require.NoError(t, err)

	restored := NewConversationStore()
	require.NoError(t, restored.Restore(data))

	assert.Equal(t, s.Conversations(), restored.Conversations())
	assert.Equal(t, "c1", restored.ActiveConversation())
	assert.False(t, restored.IsLoading())
}

// mapPersistor is an in-memory Persistor for exercising the snapshot+save
// boundary without Redis.
type mapPersistor struct {
	data map[string][]byte
}

func (m *mapPersistor) Save(_ context.Context, key string, data []byte) error {
	m.data[key] = data
	return nil
}

func (m *mapPersistor) Load(_ context.Context, key string) ([]byte, error) {
	d, ok := m.data[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return d, nil
}

func (m *mapPersistor) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestSaveAndLoadSnapshotThroughPersistor(t *testing.T) {
	p := &mapPersistor{data: map[string][]byte{}}
	ctx := context.Background()

	s := NewConversationStore()
	s.AddConversation(Conversation{ID: "c1", Title: "Nueva Conversación"})
	s.SetActiveConversation("c1")

	key := UserKey(KeyChat, "user-1")
	require.NoError(t, SaveSnapshot(ctx, p, key, s))

	fresh := NewConversationStore()
	require.NoError(t, LoadSnapshot(ctx, p, key, fresh))
	assert.Equal(t, s.Conversations(), fresh.Conversations())
	assert.Equal(t, "c1", fresh.ActiveConversation())

	// Missing snapshot leaves the store in its zero state.
	empty := NewConversationStore()
	require.NoError(t, LoadSnapshot(ctx, p, UserKey(KeyChat, "user-2"), empty))
	assert.Empty(t, empty.Conversations())
}
