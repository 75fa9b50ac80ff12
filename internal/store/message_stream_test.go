package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahpasar/internal/domain/entity"
)

func msg(id, senderID, recipientID string, read bool) *entity.Message {
	return &entity.Message{
		ID:             id,
		ConversationID: "c1",
		SenderID:       senderID,
		RecipientID:    recipientID,
		Content:        "hello",
		Type:           entity.MessageTypeText,
		Read:           read,
		CreatedAt:      time.Now(),
	}
}

func waitMessages(t *testing.T, s *MessageStream) []*entity.Message {
	t.Helper()
	select {
	case messages := <-s.Updates():
		return messages
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message snapshot")
		return nil
	}
}

func waitMarked(t *testing.T, repo *fakeMessageRepo) string {
	t.Helper()
	select {
	case id := <-repo.markedCh:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for read receipt")
		return ""
	}
}

func TestMessageStreamPublishesSnapshots(t *testing.T) {
	repo := newFakeMessageRepo()
	s := NewMessageStream("u1", "c1", repo)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	repo.snapshot <- []*entity.Message{
		msg("m1", "u2", "u1", true),
		msg("m2", "u1", "u2", false),
	}

	messages := waitMessages(t, s)
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "c1", s.ConversationID())
}

func TestMessageStreamMarksIncomingUnreadMessages(t *testing.T) {
	repo := newFakeMessageRepo()
	s := NewMessageStream("u1", "c1", repo)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	repo.snapshot <- []*entity.Message{
		msg("m1", "u2", "u1", false), // incoming, unread: marked
		msg("m2", "u2", "u1", true),  // incoming, already read: untouched
		msg("m3", "u1", "u2", false), // outgoing: untouched
	}
	waitMessages(t, s)

	assert.Equal(t, "m1", waitMarked(t, repo))

	select {
	case id := <-repo.markedCh:
		t.Fatalf("unexpected read receipt for message %s", id)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMessageStreamReadReceiptsSurviveStop(t *testing.T) {
	repo := newFakeMessageRepo()
	s := NewMessageStream("u1", "c1", repo)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	repo.snapshot <- []*entity.Message{
		msg("m1", "u2", "u1", false),
	}
	waitMessages(t, s)

	// Tearing the stream down does not cancel the receipt write already
	// in flight.
	cancel()
	s.Stop()

	assert.Equal(t, "m1", waitMarked(t, repo))
}
