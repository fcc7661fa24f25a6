// Command admin is the operator CLI: bootstrap an administrator account,
// inspect accounts, and clear login locks without going through the API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"church-platform/internal/auth"
	"church-platform/internal/config"
	internaldb "church-platform/internal/db"
	"church-platform/internal/db/repository"
	"church-platform/internal/domain"
)

func main() {
	root := &cobra.Command{
		Use:   "admin",
		Short: "Operator tooling for the church platform database",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("db", "", "path to the SQLite database (defaults to DB_PATH)")

	root.AddCommand(createAdminCmd(), listUsersCmd(), unlockCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openUserRepo opens the database from the --db flag (or DB_PATH) and runs
// pending migrations so the CLI works against a fresh file too.
func openUserRepo(cmd *cobra.Command) (*repository.UserRepo, func(), error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		if err := config.LoadDotEnv(".env"); err != nil {
			log.Printf("warning: could not load .env: %v", err)
		}
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return nil, nil, err
		}
		path = cfg.DBPath
	}

	writeDB, err := internaldb.OpenSQLite(path, "write", 0)
	if err != nil {
		return nil, nil, err
	}
	if err := internaldb.RunMigrations(writeDB); err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}
	return repository.NewUserRepo(writeDB), func() { _ = writeDB.Close() }, nil
}

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.RegisterRequest{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     domain.RoleAdmin,
			}
			if err := req.Validate(); err != nil {
				return err
			}

			hasher := auth.NewPasswordHasher(0)
			hash, err := hasher.Hash(req.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			repo, cleanup, err := openUserRepo(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := repo.Create(context.Background(), &domain.User{
				Name:         req.Name,
				Email:        req.Email,
				PasswordHash: hash,
				Role:         domain.RoleAdmin,
				Status:       domain.StatusActive,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created administrator %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List all accounts with role, status, and lock state",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := openUserRepo(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			users, total, err := repo.List(context.Background(), domain.PageRequest{MaxResults: 200})
			if err != nil {
				return err
			}
			now := time.Now()
			for _, u := range users {
				lock := "-"
				if u.IsLocked(now) {
					lock = fmt.Sprintf("locked until %s", u.LockUntil.Format(time.RFC3339))
				}
				fmt.Printf("%-36s  %-30s  %-7s  %-9s  attempts=%d  %s\n",
					u.ID, u.Email, u.Role, u.Status, u.LoginAttempts, lock)
			}
			fmt.Printf("%d account(s)\n", total)
			return nil
		},
	}
}

func unlockCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Clear the login lock and attempt counter for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, cleanup, err := openUserRepo(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			user, err := repo.GetByEmail(ctx, domain.NormalizeEmail(email))
			if err != nil {
				return err
			}
			if err := repo.SetAttempts(ctx, user.ID, 0, nil); err != nil {
				return err
			}
			fmt.Printf("unlocked %s\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
