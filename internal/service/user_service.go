package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yamdb/internal/cache"
	apperrors "yamdb/internal/errors"
	"yamdb/internal/model"
	"yamdb/internal/permission"
	"yamdb/internal/repository"
	"yamdb/internal/validator"
)

const userCacheTTL = 5 * time.Minute

// UserFields carries user attributes; nil means "not supplied".
type UserFields struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *model.Role
}

// UserService exposes admin user management and self-service.
type UserService interface {
	Create(ctx context.Context, actor *model.User, fields UserFields) (*model.User, error)
	Get(ctx context.Context, actor *model.User, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, actor *model.User, search string, opts ListOptions) (*ListResult[model.User], error)
	Update(ctx context.Context, actor *model.User, username string, fields UserFields) (*model.User, error)
	Delete(ctx context.Context, actor *model.User, username string) error
	Me(ctx context.Context, actor *model.User) (*model.User, error)
	UpdateMe(ctx context.Context, actor *model.User, fields UserFields) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	log   *zap.Logger
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, log *zap.Logger) UserService {
	return &userService{repo: repo, cache: cache, log: orNop(log)}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) Create(ctx context.Context, actor *model.User, fields UserFields) (*model.User, error) {
	if err := permission.Check(actor, permission.Users, permission.Create, permission.NoOwner); err != nil {
		return nil, err
	}

	user := &model.User{Role: model.RoleUser}
	fields.apply(user)
	if err := validator.User(user); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, user); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewValidationError("username", msgUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("by", actor.Username))
	return user, nil
}

func (s *userService) Get(ctx context.Context, actor *model.User, username string) (*model.User, error) {
	if err := permission.Check(actor, permission.Users, permission.Read, permission.NoOwner); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "user")
	}
	return user, nil
}

// GetByID resolves token subjects. Results are cached for userCacheTTL.
func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "user")
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) List(ctx context.Context, actor *model.User, search string, opts ListOptions) (*ListResult[model.User], error) {
	if err := permission.Check(actor, permission.Users, permission.Read, permission.NoOwner); err != nil {
		return nil, err
	}
	users, total, err := s.repo.List(ctx, search, opts.window())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return paged(opts, users, total)
}

func (s *userService) Update(ctx context.Context, actor *model.User, username string, fields UserFields) (*model.User, error) {
	if err := permission.Check(actor, permission.Users, permission.Update, permission.NoOwner); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "user")
	}
	return s.save(ctx, user, fields)
}

func (s *userService) Delete(ctx context.Context, actor *model.User, username string) error {
	if err := permission.Check(actor, permission.Users, permission.Delete, permission.NoOwner); err != nil {
		return err
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return translate(err, "user")
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return translate(err, "user")
	}
	s.cache.Delete(ctx, s.cacheKey(user.ID))
	s.log.Info("user deleted", zap.Uint("user_id", user.ID), zap.String("by", actor.Username))
	return nil
}

func (s *userService) Me(ctx context.Context, actor *model.User) (*model.User, error) {
	if err := permission.Check(actor, permission.Self, permission.Read, permission.NoOwner); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, translate(err, "user")
	}
	return user, nil
}

// UpdateMe edits the caller's profile. Only admins may change their role.
func (s *userService) UpdateMe(ctx context.Context, actor *model.User, fields UserFields) (*model.User, error) {
	if err := permission.Check(actor, permission.Self, permission.Update, permission.NoOwner); err != nil {
		return nil, err
	}
	if !permission.CanChangeRole(actor) {
		fields.Role = nil
	}
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, translate(err, "user")
	}
	return s.save(ctx, user, fields)
}

func (s *userService) save(ctx context.Context, user *model.User, fields UserFields) (*model.User, error) {
	fields.apply(user)
	if err := validator.User(user); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, user); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewValidationError("username", msgUsernameTaken)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// checkUnique rejects a username or email held by a different user.
func (s *userService) checkUnique(ctx context.Context, user *model.User) error {
	verr := &apperrors.ValidationError{}

	other, err := s.repo.FindByUsername(ctx, user.Username)
	switch {
	case err == nil && other.ID != user.ID:
		verr.Add("username", msgUsernameTaken)
	case err != nil && !isNotFound(err):
		return fmt.Errorf("find user by username: %w", err)
	}

	other, err = s.repo.FindByEmail(ctx, user.Email)
	switch {
	case err == nil && other.ID != user.ID:
		verr.Add("email", msgEmailTaken)
	case err != nil && !isNotFound(err):
		return fmt.Errorf("find user by email: %w", err)
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (f UserFields) apply(u *model.User) {
	if f.Username != nil {
		u.Username = *f.Username
	}
	if f.Email != nil {
		u.Email = *f.Email
	}
	if f.FirstName != nil {
		u.FirstName = *f.FirstName
	}
	if f.LastName != nil {
		u.LastName = *f.LastName
	}
	if f.Bio != nil {
		u.Bio = *f.Bio
	}
	if f.Role != nil {
		u.Role = *f.Role
	}
}
