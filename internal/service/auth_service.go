package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yamdb/internal/auth"
	apperrors "yamdb/internal/errors"
	"yamdb/internal/mail"
	"yamdb/internal/metrics"
	"yamdb/internal/model"
	"yamdb/internal/repository"
	"yamdb/internal/validator"
)

const (
	msgUsernameTaken = "a user with that username already exists"
	msgEmailTaken    = "a user with that email already exists"
	msgInvalidCode   = "invalid or expired confirmation code"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(user *model.User) (string, error)
}

// CodeSettings controls confirmation codes.
type CodeSettings struct {
	Length int
	TTL    time.Duration
}

// AuthService runs the signup and token exchange flow.
type AuthService interface {
	Signup(ctx context.Context, username, email string) (*model.User, error)
	ObtainToken(ctx context.Context, username, code string) (string, error)
	IssueCode(ctx context.Context, user *model.User) error
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	mailer mail.Mailer
	codes  CodeSettings
	log    *zap.Logger
	now    func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, mailer mail.Mailer, codes CodeSettings, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		codes:  codes,
		log:    orNop(log),
		now:    time.Now,
	}
}

// Signup creates the user on first contact, or reuses it when both username
// and email already belong to the same account, then mails a fresh code.
func (s *authService) Signup(ctx context.Context, username, email string) (*model.User, error) {
	if err := validator.Signup(username, email); err != nil {
		return nil, err
	}

	byName, err := s.users.FindByUsername(ctx, username)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	var user *model.User
	switch {
	case byName != nil && byEmail != nil && byName.ID != byEmail.ID:
		return nil, apperrors.NewValidationError("username", msgUsernameTaken).Add("email", msgEmailTaken)
	case byName != nil && byEmail == nil:
		return nil, apperrors.NewValidationError("username", msgUsernameTaken)
	case byName == nil && byEmail != nil:
		return nil, apperrors.NewValidationError("email", msgEmailTaken)
	case byName != nil:
		user = byName
	default:
		user = &model.User{Username: username, Email: email, Role: model.RoleUser}
		if err := s.users.Create(ctx, user); err != nil {
			if isDuplicate(err) {
				return nil, s.conflict(ctx, username, email)
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	}

	if err := s.IssueCode(ctx, user); err != nil {
		return nil, err
	}
	metrics.SignupsTotal.Inc()
	return user, nil
}

// conflict names the field that collided after an insert lost a race.
func (s *authService) conflict(ctx context.Context, username, email string) error {
	verr := &apperrors.ValidationError{}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		verr.Add("username", msgUsernameTaken)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		verr.Add("email", msgEmailTaken)
	}
	if !verr.HasErrors() {
		verr.Add("username", msgUsernameTaken)
	}
	return verr
}

// IssueCode replaces the user's pending code and mails the new one.
func (s *authService) IssueCode(ctx context.Context, user *model.User) error {
	code, err := auth.GenerateCode(s.codes.Length)
	if err != nil {
		return err
	}
	hash, err := auth.HashCode(code)
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.codes.TTL)
	if err := s.users.SetConfirmationCode(ctx, user.ID, hash, expiresAt); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	user.ConfirmationCode = hash
	user.ConfirmationExpiresAt = &expiresAt

	if err := s.mailer.Send(ctx, mail.ConfirmationMessage(user.Email, user.Username, code)); err != nil {
		return fmt.Errorf("deliver confirmation code: %w", err)
	}
	s.log.Info("confirmation code issued", zap.Uint("user_id", user.ID), zap.Time("expires_at", expiresAt))
	return nil
}

// ObtainToken exchanges a pending code for an access token. A code works once.
func (s *authService) ObtainToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return "", notFound("user")
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !s.codeMatches(user, code) {
		metrics.ObserveToken(false)
		return "", apperrors.NewValidationError("confirmation_code", msgInvalidCode)
	}

	consumed, err := s.users.ConsumeConfirmationCode(ctx, user.ID, user.ConfirmationCode)
	if err != nil {
		return "", fmt.Errorf("consume confirmation code: %w", err)
	}
	if !consumed {
		metrics.ObserveToken(false)
		return "", apperrors.NewValidationError("confirmation_code", msgInvalidCode)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	metrics.ObserveToken(true)
	s.log.Info("token issued", zap.Uint("user_id", user.ID))
	return token, nil
}

func (s *authService) codeMatches(user *model.User, code string) bool {
	if len(code) != s.codes.Length || user.ConfirmationCode == "" {
		return false
	}
	if user.ConfirmationExpiresAt == nil || !s.now().Before(*user.ConfirmationExpiresAt) {
		return false
	}
	return auth.CompareCode(user.ConfirmationCode, code)
}
