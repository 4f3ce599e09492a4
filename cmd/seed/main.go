package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"yamdb/internal/auth"
	"yamdb/internal/config"
	"yamdb/internal/db"
	"yamdb/internal/logger"
	"yamdb/internal/mail"
	"yamdb/internal/model"
	"yamdb/internal/repository"
	"yamdb/internal/service"
	"yamdb/internal/validator"
)

const (
	usernameFlag = "username"
	emailFlag    = "email"
	roleFlag     = "role"
)

var adminFlags = map[string]cobraflags.Flag{
	usernameFlag: &cobraflags.StringFlag{
		Name:  usernameFlag,
		Value: "",
		Usage: "Username of the account to create or promote (required)",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email the confirmation code is sent to (required for new accounts)",
	},
	roleFlag: &cobraflags.StringFlag{
		Name:  roleFlag,
		Value: string(model.RoleAdmin),
		Usage: "Role to assign: user, moderator or admin",
	},
}

func main() {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Bootstrap YaMDb data",
		SilenceUsage: true,
	}
	root.AddCommand(newAdminCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAdminCommand() *cobra.Command {
	var superuser bool
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create or promote an account and mail it a confirmation code",
		Long: `Create an account with the given role, or change the role of an existing one,
then issue a fresh confirmation code so the account can obtain a token through
POST /api/v1/auth/token/.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return seedAdmin(cmd.Context(), adminFlags[usernameFlag].GetString(), adminFlags[emailFlag].GetString(),
				model.Role(adminFlags[roleFlag].GetString()), superuser)
		},
	}
	cobraflags.RegisterMap(cmd, adminFlags)
	cmd.Flags().BoolVar(&superuser, "superuser", false, "Grant superuser rights, which imply admin")
	return cmd
}

func seedAdmin(ctx context.Context, username, email string, role model.Role, superuser bool) error {
	if username == "" {
		return fmt.Errorf("--%s is required", usernameFlag)
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zl, err := logger.New(!cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	users := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(users, auth.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTTL), mail.New(cfg, zl),
		service.CodeSettings{Length: cfg.ConfirmationCodeLength, TTL: cfg.ConfirmationCodeTTL}, zl)

	user, err := users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if email == "" {
			return fmt.Errorf("--%s is required for a new account", emailFlag)
		}
		user = &model.User{Username: username, Email: email, Role: role, IsSuperuser: superuser}
		if err := validator.User(user); err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		zl.Info("user created", zap.String("username", username), zap.String("role", string(role)))
	case err != nil:
		return fmt.Errorf("find user: %w", err)
	default:
		user.Role = role
		user.IsSuperuser = superuser
		if err := users.Update(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		zl.Info("user promoted", zap.String("username", username), zap.String("role", string(role)))
	}

	return authService.IssueCode(ctx, user)
}
