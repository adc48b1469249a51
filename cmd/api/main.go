package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/proposal-service/internal/api/http"
	"github.com/spec-kit/proposal-service/internal/api/http/handlers"
	"github.com/spec-kit/proposal-service/internal/assistant"
	"github.com/spec-kit/proposal-service/internal/auth"
	"github.com/spec-kit/proposal-service/internal/config"
	"github.com/spec-kit/proposal-service/internal/events"
	"github.com/spec-kit/proposal-service/internal/observability"
	"github.com/spec-kit/proposal-service/internal/persistence"
	"github.com/spec-kit/proposal-service/internal/repository"
	"github.com/spec-kit/proposal-service/internal/service"
	"github.com/spec-kit/proposal-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	seedUsers, err := persistence.SeedUsers(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to seed users", zap.Error(err))
	}
	userRepo := repository.NewUserRepository(seedUsers)
	proposalRepo := repository.NewProposalRepository(persistence.SeedProposals())
	invitationRepo := repository.NewInvitationRepository()
	auditRepo := repository.NewAuditLogRepository()
	templateRepo := repository.NewTemplateRepository(persistence.SeedTemplates())

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		AuditRepo: auditRepo,
		Redis:     redis.Client,
	})
	proposalService := service.NewProposalService(service.ProposalDependencies{
		ProposalRepo: proposalRepo,
		UserRepo:     userRepo,
		AuditRepo:    auditRepo,
		Dispatcher:   dispatcher,
	})
	accessService := service.NewAccessService(service.AccessDependencies{
		ProposalRepo:   proposalRepo,
		InvitationRepo: invitationRepo,
		AuditRepo:      auditRepo,
		Dispatcher:     dispatcher,
	})
	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:   userRepo,
		AuditRepo:  auditRepo,
		Dispatcher: dispatcher,
	})
	assistantClient := assistant.New(cfg.Assistant)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(redis),
		Auth:           handlers.NewAuthHandler(authService),
		Proposals:      handlers.NewProposalsHandler(proposalService, accessService),
		Templates:      handlers.NewTemplatesHandler(templateRepo),
		Assistant:      handlers.NewAssistantHandler(assistantClient),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
	})

	metricsServer := observability.MetricsServer(cfg.App.MetricsAddr, metrics)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listen", zap.Error(err))
		}
	}()

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = metricsServer.Shutdown(context.Background())
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
