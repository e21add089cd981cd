package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	platformdynamo "github.com/Apurer/user-service/internal/platform/dynamo"
	platformobservability "github.com/Apurer/user-service/internal/platform/observability"
	platformpostgres "github.com/Apurer/user-service/internal/platform/postgres"
	userhttp "github.com/Apurer/user-service/internal/users/adapters/http"
	"github.com/Apurer/user-service/internal/users/adapters/identity"
	usermemory "github.com/Apurer/user-service/internal/users/adapters/memory"
	userobs "github.com/Apurer/user-service/internal/users/adapters/observability"
	userdynamo "github.com/Apurer/user-service/internal/users/adapters/persistence/dynamo"
	userpostgres "github.com/Apurer/user-service/internal/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/user-service/internal/users/application"
	userports "github.com/Apurer/user-service/internal/users/ports"
)

// Run boots the user HTTP API with observability and storage wired.
func Run(ctx context.Context) error {
	const serviceName = "user-service-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg := LoadConfig()
	repo, cleanup := buildUserRepository(ctx, cfg, logger)
	defer cleanup()

	userService := userobs.New(
		userapp.NewService(repo, identity.Generator{}),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	router := userhttp.NewRouter(userhttp.NewUserAPI(userService), otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("user API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("user API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildUserRepository(ctx context.Context, cfg Config, logger *slog.Logger) (userports.Repository, func()) {
	if cfg.UsersTable != "" {
		client, err := platformdynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			logger.Warn("failed to build dynamodb client, falling back to memory", slog.String("error", err.Error()))
			return usermemory.NewRepository(), func() {}
		}
		logger.Info("user repository configured with dynamodb", slog.String("table", cfg.UsersTable))
		return userdynamo.NewRepository(client, cfg.UsersTable), func() {}
	}
	if cfg.PostgresDSN != "" {
		db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
			return usermemory.NewRepository(), func() {}
		}
		logger.Info("user repository configured with postgres")
		return userpostgres.NewRepository(db), platformpostgres.Close(db)
	}
	logger.Warn("USERS_TABLE and POSTGRES_DSN not set, falling back to in-memory user repository")
	return usermemory.NewRepository(), func() {}
}
