package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pecas-api/internal/application/auth"
	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pecas-api/migrations"
	"github.com/jhoicas/pecas-api/pkg/config"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// env estado compartido por los subcomandos tras PersistentPreRunE.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "pecasctl",
		Short:         "Administración de pecas-api",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Storage != config.StoragePostgres {
				return fmt.Errorf("pecasctl requiere STORAGE_DRIVER=postgres (actual: %s)", cfg.Storage)
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return nil
		},
	}
	root.AddCommand(newMigrateCmd(e), newSeedUserCmd(e))
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			pool, err := postgres.NewPool(ctx, e.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := migrations.Up(ctx, pool)
			for _, name := range applied {
				e.log.Info().Str("migration", name).Msg("migración aplicada")
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				e.log.Info().Msg("esquema al día")
			}
			return nil
		},
	}
}

func newSeedUserCmd(e *env) *cobra.Command {
	var in dto.RegisterRequest
	var force bool
	cmd := &cobra.Command{
		Use:   "seed-user",
		Short: "Crea el usuario administrador inicial",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Email == "" || in.Password == "" {
				return errors.New("--email y --password son obligatorios")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := postgres.NewPool(ctx, e.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			// seed-user no usa recuperación de contraseña: sin store de códigos ni notifier
			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), nil, nil, auth.JWTConfig{
				Secret:     e.cfg.JWT.Secret,
				ExpMinutes: e.cfg.JWT.Expiration,
				Issuer:     e.cfg.JWT.Issuer,
			}, e.cfg.Auth.ResetCodeTTL, e.log)

			user, err := uc.SeedAdmin(ctx, in, force)
			if err != nil {
				return err
			}
			e.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("administrador creado")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña (mínimo 6 caracteres)")
	cmd.Flags().StringVar(&in.Name, "name", "Administrador", "nombre visible")
	cmd.Flags().BoolVar(&force, "force", false, "crear aunque ya existan usuarios")
	return cmd
}
