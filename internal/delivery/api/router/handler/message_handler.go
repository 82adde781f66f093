package handler

import (
	"net/http"

	"educycle/internal/delivery/api/response"
	"educycle/internal/infra/metrics"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageHandler serves buyer-seller conversations.
type MessageHandler struct {
	messageUC usecase.MessageUsecase
}

// NewMessageHandler is the constructor for MessageHandler.
func NewMessageHandler(messageUC usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{messageUC: messageUC}
}

// SendMessageRequest is the body of POST /api/messages.
type SendMessageRequest struct {
	ReceiverID  uuid.UUID `json:"receiverId" validate:"required"`
	ProductID   uuid.UUID `json:"productId" validate:"required"`
	Content     string    `json:"content"`
	Attachments []string  `json:"attachments" validate:"omitempty,dive,required"`
}

// Send appends a message to the conversation about a product.
func (h *MessageHandler) Send(c echo.Context) error {
	senderID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.messageUC.Send(c.Request().Context(), senderID, &usecase.SendMessageInput{
		ReceiverID:  req.ReceiverID,
		ProductID:   req.ProductID,
		Content:     req.Content,
		Attachments: req.Attachments,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	metrics.RecordMarketplaceEvent("message_sent")

	return response.Success(c, http.StatusCreated, message)
}

// History returns the conversation between the caller and :userId about :productId.
func (h *MessageHandler) History(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	otherUserID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	productID, err := uuidParam(c, "productId")
	if err != nil {
		return err
	}

	messages, err := h.messageUC.History(c.Request().Context(), userID, otherUserID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages)
}

// Conversations lists the caller's conversations with their last message.
func (h *MessageHandler) Conversations(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	conversations, err := h.messageUC.Conversations(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, conversations)
}
