package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"yamdb/internal/middleware"
	"yamdb/internal/service"
)

// CreateReviewRequest posts a review.
type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score *int   `json:"score" validate:"required"`
}

// UpdateReviewRequest edits a review partially.
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// CommentRequest carries comment text. Text is required on create only.
type CommentRequest struct {
	Text *string `json:"text"`
}

// ReviewHandler serves /titles/{title_id}/reviews/.
type ReviewHandler struct {
	svc      service.ReviewService
	pageSize int
}

// NewReviewHandler creates a review handler.
func NewReviewHandler(svc service.ReviewService, pageSize int) *ReviewHandler {
	return &ReviewHandler{svc: svc, pageSize: pageSize}
}

// List godoc
// @Summary List reviews of a title
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param page query int false "Page number"
// @Success 200 {object} Page[ReviewResponse]
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/ [get]
func (h *ReviewHandler) List(c echo.Context) error {
	titleID, err := idParam(c, "title_id")
	if err != nil {
		return err
	}
	opts, err := listOptions(c, h.pageSize)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.Request().Context(), titleID, opts)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPage(c, opts, res, toReviewResponse))
}

// Get godoc
// @Summary Get review
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/ [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	review, err := h.svc.Get(c.Request().Context(), titleID, reviewID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// Create godoc
// @Summary Post a review
// @Description One review per user per title. Score is an integer from 1 to 10.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review body CreateReviewRequest true "Review"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/ [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	titleID, err := idParam(c, "title_id")
	if err != nil {
		return err
	}
	var req CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	review, err := h.svc.Create(c.Request().Context(), middleware.CurrentUser(c), titleID, req.Text, *req.Score)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// Update godoc
// @Summary Edit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param review body UpdateReviewRequest true "Fields to change"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/ [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	var req UpdateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	review, err := h.svc.Update(c.Request().Context(), middleware.CurrentUser(c), titleID, reviewID, req.Text, req.Score)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/ [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), titleID, reviewID); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func reviewPath(c echo.Context) (uint, uint, error) {
	titleID, err := idParam(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := idParam(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// CommentHandler serves /titles/{title_id}/reviews/{review_id}/comments/.
type CommentHandler struct {
	svc      service.CommentService
	pageSize int
}

// NewCommentHandler creates a comment handler.
func NewCommentHandler(svc service.CommentService, pageSize int) *CommentHandler {
	return &CommentHandler{svc: svc, pageSize: pageSize}
}

// List godoc
// @Summary List comments of a review
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param page query int false "Page number"
// @Success 200 {object} Page[CommentResponse]
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/ [get]
func (h *CommentHandler) List(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	opts, err := listOptions(c, h.pageSize)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.Request().Context(), titleID, reviewID, opts)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPage(c, opts, res, toCommentResponse))
}

// Get godoc
// @Summary Get comment
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id}/ [get]
func (h *CommentHandler) Get(c echo.Context) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return err
	}
	comment, err := h.svc.Get(c.Request().Context(), titleID, reviewID, commentID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Create godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment body CommentRequest true "Comment"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/ [post]
func (h *CommentHandler) Create(c echo.Context) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var text string
	if req.Text != nil {
		text = *req.Text
	}
	comment, err := h.svc.Create(c.Request().Context(), middleware.CurrentUser(c), titleID, reviewID, text)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// Update godoc
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Param comment body CommentRequest true "New text"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id}/ [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Update(c.Request().Context(), middleware.CurrentUser(c), titleID, reviewID, commentID, req.Text)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id}/ [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), titleID, reviewID, commentID); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func commentPath(c echo.Context) (uint, uint, uint, error) {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err := idParam(c, "comment_id")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
