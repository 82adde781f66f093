package impl

import (
	"context"
	"strings"
	"testing"

	"educycle/internal/domain/entity"
	domainerrors "educycle/internal/domain/errors"
	"educycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type messageFixtures struct {
	store     *testStore
	srv       usecase.MessageUsecase
	publisher *mockPublisher
	seller    *entity.User
	buyer     *entity.User
	product   *entity.Product
}

func newMessageFixtures(t *testing.T) *messageFixtures {
	t.Helper()

	store := newTestStore(t)
	seller := store.seedUser(t, "A", "a@mit.edu")
	buyer := store.seedUser(t, "B", "b@mit.edu")
	product, err := store.newProductService(t).Create(context.Background(), seller.ID, newCalculatorInput())
	require.NoError(t, err)

	publisher := &mockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	return &messageFixtures{
		store: store,
		srv: NewMessageService(MessageServiceParams{
			MessageRepo: store.messages,
			ProductRepo: store.products,
			UserRepo:    store.users,
			Publisher:   publisher,
			Logger:      newDiscardLogger(),
		}),
		publisher: publisher,
		seller:    seller,
		buyer:     buyer,
		product:   product,
	}
}

func TestMessageService_HistoryInAppendOrderForBothParticipants(t *testing.T) {
	f := newMessageFixtures(t)
	ctx := context.Background()

	_, err := f.srv.Send(ctx, f.buyer.ID, &usecase.SendMessageInput{ReceiverID: f.seller.ID, ProductID: f.product.ID, Content: "Is it still available?"})
	require.NoError(t, err)
	_, err = f.srv.Send(ctx, f.seller.ID, &usecase.SendMessageInput{ReceiverID: f.buyer.ID, ProductID: f.product.ID, Content: "Yes"})
	require.NoError(t, err)
	_, err = f.srv.Send(ctx, f.buyer.ID, &usecase.SendMessageInput{ReceiverID: f.seller.ID, ProductID: f.product.ID, Attachments: []string{"/api/uploads/images/x.png"}})
	require.NoError(t, err)

	fromBuyer, err := f.srv.History(ctx, f.buyer.ID, f.seller.ID, f.product.ID)
	require.NoError(t, err)
	fromSeller, err := f.srv.History(ctx, f.seller.ID, f.buyer.ID, f.product.ID)
	require.NoError(t, err)

	require.Len(t, fromBuyer, 3)
	assert.Equal(t, fromBuyer, fromSeller)
	assert.Equal(t, "Is it still available?", fromBuyer[0].Content)
	assert.Equal(t, "Yes", fromBuyer[1].Content)
	assert.Equal(t, []string{"/api/uploads/images/x.png"}, fromBuyer[2].Attachments)

	f.publisher.AssertNumberOfCalls(t, "Publish", 3)
}

func TestMessageService_SendPublishesToReceiver(t *testing.T) {
	f := newMessageFixtures(t)

	long := strings.Repeat("x", 200)
	_, err := f.srv.Send(context.Background(), f.buyer.ID, &usecase.SendMessageInput{ReceiverID: f.seller.ID, ProductID: f.product.ID, Content: long})
	require.NoError(t, err)

	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e *entity.MarketplaceEvent) bool {
		return e.Type == entity.EventMessageSent &&
			e.RecipientID == f.seller.ID.String() &&
			e.ProductName == f.product.Name &&
			len([]rune(e.Preview)) == previewRunes+1
	}))
}

func TestMessageService_SendValidation(t *testing.T) {
	f := newMessageFixtures(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		sender  uuid.UUID
		input   *usecase.SendMessageInput
		wantErr error
	}{
		{
			name:    "empty message",
			sender:  f.buyer.ID,
			input:   &usecase.SendMessageInput{ReceiverID: f.seller.ID, ProductID: f.product.ID, Content: "  "},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "to self",
			sender:  f.buyer.ID,
			input:   &usecase.SendMessageInput{ReceiverID: f.buyer.ID, ProductID: f.product.ID, Content: "hi"},
			wantErr: domainerrors.ErrInvalidRecipient,
		},
		{
			name:    "unknown receiver",
			sender:  f.buyer.ID,
			input:   &usecase.SendMessageInput{ReceiverID: uuid.New(), ProductID: f.product.ID, Content: "hi"},
			wantErr: domainerrors.ErrUserNotFound,
		},
		{
			name:    "unknown product",
			sender:  f.buyer.ID,
			input:   &usecase.SendMessageInput{ReceiverID: f.seller.ID, ProductID: uuid.New(), Content: "hi"},
			wantErr: domainerrors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.srv.Send(ctx, tt.sender, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	history, err := f.srv.History(ctx, f.buyer.ID, f.seller.ID, f.product.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMessageService_Conversations(t *testing.T) {
	f := newMessageFixtures(t)
	ctx := context.Background()

	sent, err := f.srv.Send(ctx, f.buyer.ID, &usecase.SendMessageInput{ReceiverID: f.seller.ID, ProductID: f.product.ID, Content: "hello"})
	require.NoError(t, err)

	for _, userID := range []uuid.UUID{f.buyer.ID, f.seller.ID} {
		conversations, err := f.srv.Conversations(ctx, userID)
		require.NoError(t, err)
		require.Len(t, conversations, 1)
		assert.Equal(t, sent.ConversationKey, conversations[0].Key)
		require.NotNil(t, conversations[0].LastMessage)
		assert.Equal(t, "hello", conversations[0].LastMessage.Content)
	}
}
