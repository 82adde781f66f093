package main

import (
	"context"
	"log/slog"
	"os"

	"educycle/config"
	"educycle/internal/delivery"
	"educycle/internal/delivery/api"
	"educycle/internal/delivery/api/middleware"
	"educycle/internal/delivery/api/router/handler"
	"educycle/internal/delivery/worker"
	workerhandler "educycle/internal/delivery/worker/handler"
	"educycle/internal/domain/service"
	"educycle/internal/infra/auth"
	logs "educycle/internal/infra/log"
	"educycle/internal/infra/notification"
	"educycle/internal/infra/persistence"
	"educycle/internal/infra/pubsub"
	"educycle/internal/infra/qrcode"
	"educycle/internal/infra/storage"
	"educycle/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		persistence.NewRepositories,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newQRCodeService,
			pubsub.NewEventPublisher,
			storage.NewImageStorage,
			notification.NewNotificationService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
			impl.NewProductService,
			impl.NewOrderService,
			impl.NewMessageService,
			impl.NewDeviceService,
			impl.NewUploadService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewMessageHandler,
			handler.NewDeviceHandler,
			handler.NewUploadHandler,
			handler.NewHealthHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				newEmbeddedNotifier,
				fx.ResultTags(`group:"deliveries,flatten"`),
			),
		),
	)
}

// newEmbeddedNotifier serves the push worker from this process when notifier.embedded is set
func newEmbeddedNotifier(params worker.ServerParams) ([]delivery.Delivery, error) {
	if params.Cfg.Notifier == nil || !params.Cfg.Notifier.Embedded {
		return nil, nil
	}

	srv, err := worker.NewServer(params)
	if err != nil {
		return nil, err
	}

	return []delivery.Delivery{srv}, nil
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
