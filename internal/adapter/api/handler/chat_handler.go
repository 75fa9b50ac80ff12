package handler

import (
	"log"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/usecase"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/response"
	"rumahpasar/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startConversationRequest struct {
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,dive,required"`
	PropertyID     string   `json:"property_id" validate:"omitempty"`
}

type sendMessageRequest struct {
	Content       string           `json:"content" validate:"omitempty,max=5000"`
	Type          string           `json:"type" validate:"omitempty,oneof=text image file call"`
	AttachmentURL string           `json:"attachment_url" validate:"omitempty,url"`
	CallInfo      *entity.CallInfo `json:"call_info" validate:"omitempty"`
}

func (h *ChatHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	conversation, err := h.chatUseCase.StartConversation(c.Request().Context(), uid, usecase.StartConversationInput{
		ParticipantIDs: req.ParticipantIDs,
		PropertyID:     req.PropertyID,
	})
	if err != nil {
		log.Printf("Error starting conversation: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c)

	conversations, total, err := h.chatUseCase.ListConversations(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, conversations, total, limit, offset)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Conversation ID is required", nil))
	}

	conversation, err := h.chatUseCase.GetConversationByID(c.Request().Context(), uid, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	conversationID := c.Param("id")

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		ConversationID: conversationID,
		Content:        req.Content,
		Type:           req.Type,
		AttachmentURL:  req.AttachmentURL,
		CallInfo:       req.CallInfo,
	})
	if err != nil {
		log.Printf("Error sending message to conversation %s: %v", conversationID, err)
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	conversationID := c.Param("id")
	limit, offset := utils.GetLimitOffset(c)

	messages, total, err := h.chatUseCase.GetMessages(c.Request().Context(), uid, conversationID, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, limit, offset)
}

// MarkConversationRead resets the caller's unread counter for the
// conversation to zero.
func (h *ChatHandler) MarkConversationRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	conversationID := c.Param("id")

	if err := h.chatUseCase.MarkConversationRead(c.Request().Context(), uid, conversationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Conversation marked as read",
	})
}
