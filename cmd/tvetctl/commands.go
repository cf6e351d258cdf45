package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tvet-connect-backend/config"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/internal/repository/postgres"
	"tvet-connect-backend/internal/usecase"
	"tvet-connect-backend/pkg/auth"
	"tvet-connect-backend/pkg/database"
	"tvet-connect-backend/pkg/logger"
	"tvet-connect-backend/pkg/metrics"
	"tvet-connect-backend/pkg/security"

	"github.com/spf13/cobra"
)

// =============================================================================
// ENVIRONMENT
// =============================================================================

// cliEnv opens the resources a command needs. Each opener returns a cleanup func.
type cliEnv struct {
	openSQL  func(ctx context.Context) (*sql.DB, func(), error)
	openAuth func(ctx context.Context) (domain.AuthUsecase, func(), error)

	migrateUp     func(ctx context.Context, db *sql.DB) error
	migrateDown   func(ctx context.Context, db *sql.DB) error
	migrateStatus func(ctx context.Context, db *sql.DB) error
}

func productionEnv() cliEnv {
	return cliEnv{
		openSQL: func(ctx context.Context) (*sql.DB, func(), error) {
			cfg, err := config.LoadConfig()
			if err != nil {
				return nil, nil, err
			}
			db, err := database.OpenSQL(cfg.DBUrl)
			if err != nil {
				return nil, nil, fmt.Errorf("connect to database: %w", err)
			}
			return db, func() { db.Close() }, nil
		},
		openAuth: func(ctx context.Context) (domain.AuthUsecase, func(), error) {
			cfg, err := config.LoadConfig()
			if err != nil {
				return nil, nil, err
			}
			logger.Init(cfg.LogLevel, cfg.AppEnv)

			pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
			if err != nil {
				return nil, nil, fmt.Errorf("connect to database: %w", err)
			}
			secLog := security.NewLogger()
			authUC := usecase.NewAuthUsecase(
				postgres.NewUserRepository(pool),
				auth.NewPasswordHasher(cfg.BcryptCost),
				auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn),
				security.NewLoginTracker(security.DefaultLoginTrackerConfig(), secLog),
				secLog,
				metrics.NewNop(),
			)
			return authUC, func() { pool.Close(); logger.Sync() }, nil
		},
		migrateUp:     database.MigrateUp,
		migrateDown:   database.MigrateDown,
		migrateStatus: database.MigrationStatus,
	}
}

// =============================================================================
// ROOT
// =============================================================================

func newRootCmd(env cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "tvetctl",
		Short:         "Operator tooling for the TVET Connect backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(env), newCreateTVETCmd(env))
	return root
}

// =============================================================================
// MIGRATE COMMAND
// =============================================================================

func newMigrateCmd(env cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}

	run := func(action func(ctx context.Context, db *sql.DB) error, done string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			db, cleanup, err := env.openSQL(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := action(ctx, db); err != nil {
				return err
			}
			if done != "" {
				fmt.Fprintln(cmd.OutOrStdout(), done)
			}
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE:  run(env.migrateUp, "Migrations applied"),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run(env.migrateDown, "Rolled back one migration"),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(env.migrateStatus, ""),
		},
	)
	return cmd
}

// =============================================================================
// CREATE-TVET COMMAND
// =============================================================================

func newCreateTVETCmd(env cliEnv) *cobra.Command {
	var req domain.CreateTVETRequest

	cmd := &cobra.Command{
		Use:   "create-tvet",
		Short: "Create an approved TVET administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			authUC, cleanup, err := env.openAuth(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := authUC.CreateTVET(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created TVET administrator %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Email, "email", "", "login email")
	flags.StringVar(&req.Password, "password", "", "initial password (8-72 characters)")
	flags.StringVar(&req.FirstName, "first-name", "", "first name")
	flags.StringVar(&req.LastName, "last-name", "", "last name")
	flags.StringVar(&req.TVETInstitution, "institution", "", "TVET institution name")
	flags.StringVar(&req.Position, "position", "", "position at the institution")
	for _, name := range []string{"email", "password", "first-name", "last-name", "institution"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
