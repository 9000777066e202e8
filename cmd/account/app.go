package main

import (
	"io"
	"log/slog"

	"account/config"
	"account/internal/domain/service"
	"account/internal/infra/auth"
	logs "account/internal/infra/log"
	"account/internal/infra/persistence/memory"
	"account/internal/infra/validation"
	"account/internal/usecase/impl"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// runApp builds the dependency graph and runs fn against it. Only the
// constructors fn depends on are invoked.
func runApp(stderr io.Writer, fn any) error {
	app := fx.New(
		fx.Provide(func() io.Writer { return stderr }),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(fn),
	)

	return app.Err()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newSaltGenerator,
			auth.NewCredentialManager,
			validation.New,
		),
	)
}

// newSaltGenerator sizes salts from the auth configuration.
func newSaltGenerator(cfg *config.Config) service.SaltGenerator {
	return auth.NewSaltGenerator(cfg.Auth.SaltBytes)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
		),
	)
}
