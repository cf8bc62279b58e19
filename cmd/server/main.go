package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"syncboard/internal/auth"
	"syncboard/internal/config"
	"syncboard/internal/identity"
	"syncboard/internal/migrations"
	"syncboard/internal/repository"
	"syncboard/internal/server"
	"syncboard/internal/service"

	"github.com/spf13/cobra"
)

// @title           SyncBoard API
// @version         1.0
// @description     Multi-tenant project and issue tracker with sprint kanban boards.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	rootCmd := &cobra.Command{
		Use:   "syncboard",
		Short: "SyncBoard project and issue tracker API",
		RunE:  runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(syncUsersCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrations.Up(config.Load().MigrateURL())
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return migrations.Down(config.Load().MigrateURL(), steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func syncUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-users",
		Short: "Import identity provider users that have no local record",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			server.SetupLogger(cfg)

			db, err := server.OpenDB(cfg)
			if err != nil {
				return err
			}

			svc := service.NewOrganizationService(
				identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey),
				repository.NewUserRepository(db),
				repository.NewIssueRepository(db),
			)
			created, err := svc.SyncUsers(context.Background())
			if err != nil {
				return err
			}
			log.Printf("✅ Imported %d user(s)\n", created)
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var p auth.Principal
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.UserID == "" {
				return fmt.Errorf("--user is required")
			}
			cfg := config.Load()
			token, err := auth.GenerateToken(cfg.JWTSecret, cfg.JWTIssuer, p, cfg.JWTTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.UserID, "user", "", "identity provider user id")
	cmd.Flags().StringVar(&p.OrganizationID, "org", "", "active organization id")
	cmd.Flags().StringVar(&p.Role, "role", auth.RoleMember, "organization role (org:admin or org:member)")
	return cmd
}
