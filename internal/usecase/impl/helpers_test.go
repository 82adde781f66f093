package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"educycle/config"
	"educycle/internal/domain/entity"
	"educycle/internal/domain/repository"
	"educycle/internal/infra/auth"
	"educycle/internal/infra/persistence/localstore"
	"educycle/internal/infra/qrcode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "test-access-secret"},
		Auth: &config.AuthConfig{
			BcryptCost: 4,
			TokenTTL:   time.Hour,
		},
		Uploads: &config.UploadsConfig{MaxBytes: 1 << 20},
	}
}

// testStore is a full set of repositories over one in-memory Badger database.
type testStore struct {
	txManager repository.TransactionManager
	users     repository.UserRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	messages  repository.MessageRepository
	devices   repository.DeviceRepository
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	db, err := localstore.Open(&config.LocalStoreConfig{InMemory: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &testStore{
		txManager: localstore.NewTransactionManager(db),
		users:     localstore.NewUserRepository(db),
		products:  localstore.NewProductRepository(db),
		orders:    localstore.NewOrderRepository(db),
		messages:  localstore.NewMessageRepository(db),
		devices:   localstore.NewDeviceRepository(db),
	}
}

func (s *testStore) seedUser(t *testing.T, name, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		ID:         uuid.New(),
		Email:      entity.NormalizeEmail(email),
		Name:       name,
		College:    "MIT",
		Gender:     entity.GenderOther,
		Listings:   []uuid.UUID{},
		SavedItems: []uuid.UUID{},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.users.Create(context.Background(), user))

	return user
}

func (s *testStore) newProductService(t *testing.T) *productService {
	t.Helper()

	return NewProductService(ProductServiceParams{
		TxManager:   s.txManager,
		ProductRepo: s.products,
		UserRepo:    s.users,
		QRService:   qrcode.NewQRCodeService(128, "medium", "https://educycle.test"),
		Logger:      newDiscardLogger(),
	}).(*productService)
}

func (s *testStore) newAuthService(t *testing.T) *authService {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewAuthService(AuthServiceParams{
		UserRepo:     s.users,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	}).(*authService)
}

// mockPublisher is a testify mock of service.EventPublisher.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *entity.MarketplaceEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

// mockNotifier is a testify mock of service.NotificationService.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error) {
	args := m.Called(ctx, tokens, title, body, data)

	invalid, _ := args.Get(2).([]string)

	return args.Int(0), args.Int(1), invalid, args.Error(3)
}

func (m *mockNotifier) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}
