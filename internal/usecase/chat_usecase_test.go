package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahpasar/internal/domain/entity"
)

func newChatFixture(users ...*entity.User) (*ChatUseCase, *memConversationRepo, *memMessageRepo, *memNotificationRepo, *memAlerter) {
	convRepo := newMemConversationRepo()
	msgRepo := newMemMessageRepo(convRepo)
	userRepo := newMemUserRepo(users...)
	notifRepo := newMemNotificationRepo()
	alerter := newMemAlerter()

	uc := NewChatUseCase(convRepo, msgRepo, userRepo, notifRepo, alerter)
	return uc, convRepo, msgRepo, notifRepo, alerter
}

func TestStartConversationCreatesWithZeroCounters(t *testing.T) {
	uc, convRepo, _, _, _ := newChatFixture(
		&entity.User{ID: "buyer", Username: "budi"},
		&entity.User{ID: "seller", Username: "siti"},
	)

	resp, err := uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"seller"},
		PropertyID:     "prop-1",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"buyer", "seller"}, resp.Participants)
	assert.Equal(t, "prop-1", resp.PropertyID)
	assert.Empty(t, resp.LastMessage)
	assert.Equal(t, 0, resp.UnreadCount["buyer"])
	assert.Equal(t, 0, resp.UnreadCount["seller"])
	assert.Equal(t, 1, convRepo.createdCount())

	require.Len(t, resp.Others, 1)
	assert.Equal(t, "siti", resp.Others[0].Username)
}

func TestStartConversationReusesExisting(t *testing.T) {
	uc, convRepo, _, _, _ := newChatFixture(
		&entity.User{ID: "buyer"},
		&entity.User{ID: "seller"},
	)

	first, err := uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"seller"},
	})
	require.NoError(t, err)

	// Starting again, even from the other side, lands on the same
	// conversation.
	second, err := uc.StartConversation(context.Background(), "seller", StartConversationInput{
		ParticipantIDs: []string{"buyer"},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, convRepo.createdCount())
}

func TestStartConversationRejectsSoloAndUnknown(t *testing.T) {
	uc, _, _, _, _ := newChatFixture(&entity.User{ID: "buyer"})

	// Self plus duplicates of self is not a conversation.
	_, err := uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"buyer", ""},
	})
	require.Error(t, err)

	_, err = uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"ghost"},
	})
	require.Error(t, err)
}

func TestSendMessageUpdatesSummaryAndNotifies(t *testing.T) {
	uc, convRepo, _, notifRepo, alerter := newChatFixture(
		&entity.User{ID: "buyer", Username: "budi"},
		&entity.User{ID: "seller", Username: "siti"},
	)

	conv, err := uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"seller"},
	})
	require.NoError(t, err)

	resp, err := uc.SendMessage(context.Background(), "buyer", SendMessageInput{
		ConversationID: conv.ID,
		Content:        "Is the house still available?",
	})
	require.NoError(t, err)

	// Type defaults to text, recipient is the other party.
	assert.Equal(t, entity.MessageTypeText, resp.Type)
	assert.Equal(t, "seller", resp.RecipientID)
	assert.Equal(t, "budi", resp.Sender.Username)

	stored, err := convRepo.GetByID(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Is the house still available?", stored.LastMessage)
	assert.Equal(t, "buyer", stored.LastMessageSenderID)
	assert.Equal(t, 1, stored.UnreadCount["seller"])
	assert.Equal(t, 0, stored.UnreadCount["buyer"])

	// The seller got a message notification and a live frame; the sender
	// got neither.
	sellerNotifs := notifRepo.forUser("seller")
	require.Len(t, sellerNotifs, 1)
	assert.Equal(t, entity.NotificationTypeMessage, sellerNotifs[0].Type)
	assert.False(t, sellerNotifs[0].Read)

	assert.Empty(t, notifRepo.forUser("buyer"))
	assert.Equal(t, 1, alerter.countFor("seller"))
	assert.Equal(t, 0, alerter.countFor("buyer"))
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	uc, _, _, _, _ := newChatFixture(
		&entity.User{ID: "buyer"},
		&entity.User{ID: "seller"},
		&entity.User{ID: "stranger"},
	)

	conv, err := uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"seller"},
	})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "stranger", SendMessageInput{
		ConversationID: conv.ID,
		Content:        "hi",
	})
	require.Error(t, err)
}

func TestSendMessageCallRequiresCallInfo(t *testing.T) {
	uc, _, _, _, _ := newChatFixture(
		&entity.User{ID: "buyer"},
		&entity.User{ID: "seller"},
	)

	conv, err := uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"seller"},
	})
	require.NoError(t, err)

	_, err = uc.SendMessage(context.Background(), "buyer", SendMessageInput{
		ConversationID: conv.ID,
		Type:           entity.MessageTypeCall,
	})
	require.Error(t, err)

	resp, err := uc.SendMessage(context.Background(), "buyer", SendMessageInput{
		ConversationID: conv.ID,
		Type:           entity.MessageTypeCall,
		CallInfo: &entity.CallInfo{
			Kind:            "voice",
			DurationSeconds: 90,
			Outcome:         "completed",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MessageTypeCall, resp.Type)
	assert.Equal(t, 90, resp.CallInfo.DurationSeconds)
}

func TestMarkConversationReadResetsCounter(t *testing.T) {
	uc, convRepo, _, _, _ := newChatFixture(
		&entity.User{ID: "buyer"},
		&entity.User{ID: "seller"},
	)

	conv, err := uc.StartConversation(context.Background(), "buyer", StartConversationInput{
		ParticipantIDs: []string{"seller"},
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := uc.SendMessage(context.Background(), "buyer", SendMessageInput{
			ConversationID: conv.ID,
			Content:        "ping",
		})
		require.NoError(t, err)
	}

	stored, _ := convRepo.GetByID(context.Background(), conv.ID)
	require.Equal(t, 5, stored.UnreadCount["seller"])

	require.NoError(t, uc.MarkConversationRead(context.Background(), "seller", conv.ID))

	stored, _ = convRepo.GetByID(context.Background(), conv.ID)
	assert.Equal(t, 0, stored.UnreadCount["seller"])
}

func TestListConversationsCollapsesDuplicates(t *testing.T) {
	uc, convRepo, _, _, _ := newChatFixture(
		&entity.User{ID: "buyer"},
		&entity.User{ID: "seller"},
	)

	now := time.Now()
	require.NoError(t, convRepo.Create(context.Background(), &entity.Conversation{
		ID:            "dup-1",
		Participants:  []string{"buyer", "seller"},
		LastMessageAt: now,
		UnreadCount:   map[string]int{},
	}))
	require.NoError(t, convRepo.Create(context.Background(), &entity.Conversation{
		ID:            "dup-2",
		Participants:  []string{"seller", "buyer"},
		LastMessageAt: now.Add(-time.Hour),
		UnreadCount:   map[string]int{},
	}))

	conversations, total, err := uc.ListConversations(context.Background(), "buyer", 20, 0)
	require.NoError(t, err)

	require.Len(t, conversations, 1)
	assert.Equal(t, "dup-1", conversations[0].ID)
	assert.Equal(t, int64(1), total)
}
