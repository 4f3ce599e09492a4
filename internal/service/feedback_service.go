package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/metrics"
	"yamdb/internal/model"
	"yamdb/internal/permission"
	"yamdb/internal/repository"
	"yamdb/internal/validator"
)

const msgAlreadyReviewed = "you have already reviewed this title"

// ReviewService manages reviews under a title.
type ReviewService interface {
	List(ctx context.Context, titleID uint, opts ListOptions) (*ListResult[model.Review], error)
	Get(ctx context.Context, titleID, id uint) (*model.Review, error)
	Create(ctx context.Context, actor *model.User, titleID uint, text string, score int) (*model.Review, error)
	Update(ctx context.Context, actor *model.User, titleID, id uint, text *string, score *int) (*model.Review, error)
	Delete(ctx context.Context, actor *model.User, titleID, id uint) error
}

// CommentService manages comments under a review.
type CommentService interface {
	List(ctx context.Context, titleID, reviewID uint, opts ListOptions) (*ListResult[model.Comment], error)
	Get(ctx context.Context, titleID, reviewID, id uint) (*model.Comment, error)
	Create(ctx context.Context, actor *model.User, titleID, reviewID uint, text string) (*model.Comment, error)
	Update(ctx context.Context, actor *model.User, titleID, reviewID, id uint, text *string) (*model.Comment, error)
	Delete(ctx context.Context, actor *model.User, titleID, reviewID, id uint) error
}

type reviewService struct {
	titles  repository.TitleRepository
	reviews repository.ReviewRepository
	log     *zap.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(titles repository.TitleRepository, reviews repository.ReviewRepository, log *zap.Logger) ReviewService {
	return &reviewService{titles: titles, reviews: reviews, log: orNop(log)}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID uint) error {
	ok, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return fmt.Errorf("find title: %w", err)
	}
	if !ok {
		return notFound("title")
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID uint, opts ListOptions) (*ListResult[model.Review], error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	reviews, total, err := s.reviews.List(ctx, titleID, opts.window())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return paged(opts, reviews, total)
}

func (s *reviewService) Get(ctx context.Context, titleID, id uint) (*model.Review, error) {
	review, err := s.reviews.Find(ctx, titleID, id)
	if err != nil {
		return nil, translate(err, "review")
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, actor *model.User, titleID uint, text string, score int) (*model.Review, error) {
	if err := permission.Check(actor, permission.Feedback, permission.Create, permission.NoOwner); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := validator.Review(text, score); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsByAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, apperrors.NewValidationError("non_field_errors", msgAlreadyReviewed)
	}

	review := &model.Review{TitleID: titleID, AuthorID: actor.ID, Text: text, Score: score}
	if err := s.reviews.Create(ctx, review); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewValidationError("non_field_errors", msgAlreadyReviewed)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.Author = *actor
	metrics.ReviewsCreatedTotal.Inc()
	s.log.Info("review created", zap.Uint("review_id", review.ID), zap.Uint("title_id", titleID), zap.Uint("author_id", actor.ID))
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor *model.User, titleID, id uint, text *string, score *int) (*model.Review, error) {
	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor, permission.Feedback, permission.Update, review.AuthorID); err != nil {
		return nil, err
	}

	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	if err := validator.Review(review.Text, review.Score); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *model.User, titleID, id uint) error {
	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return err
	}
	if err := permission.Check(actor, permission.Feedback, permission.Delete, review.AuthorID); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return translate(err, "review")
	}
	s.log.Info("review deleted", zap.Uint("review_id", review.ID), zap.Uint("by", actor.ID))
	return nil
}

type commentService struct {
	reviews  ReviewService
	comments repository.CommentRepository
	log      *zap.Logger
}

// NewCommentService creates a CommentService. Reviews are resolved through
// the ReviewService so comment routes share its title scoping.
func NewCommentService(reviews ReviewService, comments repository.CommentRepository, log *zap.Logger) CommentService {
	return &commentService{reviews: reviews, comments: comments, log: orNop(log)}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uint, opts ListOptions) (*ListResult[model.Comment], error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comments, total, err := s.comments.List(ctx, reviewID, opts.window())
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return paged(opts, comments, total)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, id uint) (*model.Comment, error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.Find(ctx, reviewID, id)
	if err != nil {
		return nil, translate(err, "comment")
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor *model.User, titleID, reviewID uint, text string) (*model.Comment, error) {
	if err := permission.Check(actor, permission.Feedback, permission.Create, permission.NoOwner); err != nil {
		return nil, err
	}
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if err := validator.Comment(text); err != nil {
		return nil, err
	}

	comment := &model.Comment{ReviewID: reviewID, AuthorID: actor.ID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *actor
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor *model.User, titleID, reviewID, id uint, text *string) (*model.Comment, error) {
	if actor == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor, permission.Feedback, permission.Update, comment.AuthorID); err != nil {
		return nil, err
	}

	if text != nil {
		comment.Text = *text
	}
	if err := validator.Comment(comment.Text); err != nil {
		return nil, err
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *model.User, titleID, reviewID, id uint) error {
	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return err
	}
	if err := permission.Check(actor, permission.Feedback, permission.Delete, comment.AuthorID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return translate(err, "comment")
	}
	return nil
}
