package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"yamdb/internal/model"
	"yamdb/internal/repository"
	"yamdb/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ObtainToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) IssueCode(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, actor *model.User, fields service.UserFields) (*model.User, error) {
	return m.user(m.Called(ctx, actor, fields))
}

func (m *MockUserService) Get(ctx context.Context, actor *model.User, username string) (*model.User, error) {
	return m.user(m.Called(ctx, actor, username))
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserService) List(ctx context.Context, actor *model.User, search string, opts service.ListOptions) (*service.ListResult[model.User], error) {
	args := m.Called(ctx, actor, search, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.User]), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, actor *model.User, username string, fields service.UserFields) (*model.User, error) {
	return m.user(m.Called(ctx, actor, username, fields))
}

func (m *MockUserService) Delete(ctx context.Context, actor *model.User, username string) error {
	args := m.Called(ctx, actor, username)
	return args.Error(0)
}

func (m *MockUserService) Me(ctx context.Context, actor *model.User) (*model.User, error) {
	return m.user(m.Called(ctx, actor))
}

func (m *MockUserService) UpdateMe(ctx context.Context, actor *model.User, fields service.UserFields) (*model.User, error) {
	return m.user(m.Called(ctx, actor, fields))
}

// MockCategoryService is a mock implementation of service.CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, search string, opts service.ListOptions) (*service.ListResult[model.Category], error) {
	args := m.Called(ctx, search, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Category]), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, actor *model.User, name, slug string) (*model.Category, error) {
	args := m.Called(ctx, actor, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, actor *model.User, slug string) error {
	args := m.Called(ctx, actor, slug)
	return args.Error(0)
}

// MockTitleService is a mock implementation of service.TitleService.
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) title(args mock.Arguments) (*model.Title, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter, opts service.ListOptions) (*service.ListResult[model.Title], error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Title]), args.Error(1)
}

func (m *MockTitleService) Get(ctx context.Context, id uint) (*model.Title, error) {
	return m.title(m.Called(ctx, id))
}

func (m *MockTitleService) Create(ctx context.Context, actor *model.User, fields service.TitleFields) (*model.Title, error) {
	return m.title(m.Called(ctx, actor, fields))
}

func (m *MockTitleService) Update(ctx context.Context, actor *model.User, id uint, fields service.TitleFields) (*model.Title, error) {
	return m.title(m.Called(ctx, actor, id, fields))
}

func (m *MockTitleService) Delete(ctx context.Context, actor *model.User, id uint) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) review(args mock.Arguments) (*model.Review, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context, titleID uint, opts service.ListOptions) (*service.ListResult[model.Review], error) {
	args := m.Called(ctx, titleID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Review]), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, id uint) (*model.Review, error) {
	return m.review(m.Called(ctx, titleID, id))
}

func (m *MockReviewService) Create(ctx context.Context, actor *model.User, titleID uint, text string, score int) (*model.Review, error) {
	return m.review(m.Called(ctx, actor, titleID, text, score))
}

func (m *MockReviewService) Update(ctx context.Context, actor *model.User, titleID, id uint, text *string, score *int) (*model.Review, error) {
	return m.review(m.Called(ctx, actor, titleID, id, text, score))
}

func (m *MockReviewService) Delete(ctx context.Context, actor *model.User, titleID, id uint) error {
	args := m.Called(ctx, actor, titleID, id)
	return args.Error(0)
}

// MockCommentService is a mock implementation of service.CommentService.
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) comment(args mock.Arguments) (*model.Comment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) List(ctx context.Context, titleID, reviewID uint, opts service.ListOptions) (*service.ListResult[model.Comment], error) {
	args := m.Called(ctx, titleID, reviewID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Comment]), args.Error(1)
}

func (m *MockCommentService) Get(ctx context.Context, titleID, reviewID, id uint) (*model.Comment, error) {
	return m.comment(m.Called(ctx, titleID, reviewID, id))
}

func (m *MockCommentService) Create(ctx context.Context, actor *model.User, titleID, reviewID uint, text string) (*model.Comment, error) {
	return m.comment(m.Called(ctx, actor, titleID, reviewID, text))
}

func (m *MockCommentService) Update(ctx context.Context, actor *model.User, titleID, reviewID, id uint, text *string) (*model.Comment, error) {
	return m.comment(m.Called(ctx, actor, titleID, reviewID, id, text))
}

func (m *MockCommentService) Delete(ctx context.Context, actor *model.User, titleID, reviewID, id uint) error {
	args := m.Called(ctx, actor, titleID, reviewID, id)
	return args.Error(0)
}
