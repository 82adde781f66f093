package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "educycle/internal/delivery/context"
	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/domain/repository"
	"educycle/internal/domain/service"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type messageService struct {
	messageRepo repository.MessageRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// MessageServiceParams holds dependencies for MessageService, injected by Fx.
type MessageServiceParams struct {
	fx.In

	MessageRepo repository.MessageRepository
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewMessageService is the constructor for messageService.
func NewMessageService(params MessageServiceParams) usecase.MessageUsecase {
	return &messageService{
		messageRepo: params.MessageRepo,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

func (srv *messageService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Send appends a message to the log shared by the two users for the product.
func (srv *messageService) Send(ctx context.Context, senderID uuid.UUID, input *usecase.SendMessageInput) (*entity.Message, error) {
	content := strings.TrimSpace(input.Content)
	attachments := nonEmpty(input.Attachments)

	if content == "" && len(attachments) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("message needs content or an attachment")
	}
	if input.ReceiverID == uuid.Nil || input.ProductID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("receiverId and productId are required")
	}
	if input.ReceiverID == senderID {
		return nil, domainerrors.ErrInvalidRecipient.WrapMessage("receiver equals sender")
	}

	if _, err := srv.userRepo.FindByID(ctx, input.ReceiverID); err != nil {
		return nil, errors.Wrap(err, "failed to load receiver")
	}
	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}

	msg := &entity.Message{
		ID:              uuid.New(),
		ConversationKey: entity.ConversationKey(senderID, input.ReceiverID, input.ProductID),
		SenderID:        senderID,
		ReceiverID:      input.ReceiverID,
		ProductID:       input.ProductID,
		Content:         content,
		Attachments:     attachments,
		Timestamp:       time.Now().UTC(),
	}

	if err := srv.messageRepo.Append(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "failed to append message")
	}

	publishBestEffort(ctx, srv.publisher, srv.log(ctx), &entity.MarketplaceEvent{
		Type:        entity.EventMessageSent,
		RecipientID: input.ReceiverID.String(),
		ActorID:     senderID.String(),
		ProductID:   product.ID.String(),
		ProductName: product.Name,
		Preview:     preview(content),
	})

	return msg, nil
}

func (srv *messageService) History(ctx context.Context, userID, otherUserID, productID uuid.UUID) ([]*entity.Message, error) {
	messages, err := srv.messageRepo.FindConversation(ctx, entity.ConversationKey(userID, otherUserID, productID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversation")
	}

	return messages, nil
}

func (srv *messageService) Conversations(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	conversations, err := srv.messageRepo.FindConversationsForUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	return conversations, nil
}
