package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/middleware"
	"yamdb/internal/repository"
	"yamdb/internal/service"
)

// TitleHandler serves /titles/.
type TitleHandler struct {
	svc      service.TitleService
	pageSize int
}

// NewTitleHandler creates a title handler.
func NewTitleHandler(svc service.TitleService, pageSize int) *TitleHandler {
	return &TitleHandler{svc: svc, pageSize: pageSize}
}

func titleFilter(c echo.Context) (repository.TitleFilter, error) {
	filter := repository.TitleFilter{
		Category: c.QueryParam("category"),
		Genre:    c.QueryParam("genre"),
		Name:     c.QueryParam("name"),
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fail(apperrors.NewValidationError("year", "enter a whole number"))
		}
		filter.Year = year
	}
	return filter, nil
}

// List godoc
// @Summary List titles
// @Tags titles
// @Produce json
// @Param category query string false "Category slug"
// @Param genre query string false "Genre slug"
// @Param name query string false "Name substring"
// @Param year query int false "Exact year"
// @Param page query int false "Page number"
// @Success 200 {object} Page[TitleResponse]
// @Failure 400 {object} errors.ErrorResponse
// @Router /titles/ [get]
func (h *TitleHandler) List(c echo.Context) error {
	filter, err := titleFilter(c)
	if err != nil {
		return err
	}
	opts, err := listOptions(c, h.pageSize)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.Request().Context(), filter, opts)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPage(c, opts, res, toTitleResponse))
}

// Get godoc
// @Summary Get title
// @Tags titles
// @Produce json
// @Param title_id path int true "Title ID"
// @Success 200 {object} TitleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/ [get]
func (h *TitleHandler) Get(c echo.Context) error {
	id, err := idParam(c, "title_id")
	if err != nil {
		return err
	}
	title, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toTitleResponse(title))
}

// Create godoc
// @Summary Create title
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title body TitleRequest true "Title with genre and category slugs"
// @Success 201 {object} TitleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /titles/ [post]
func (h *TitleHandler) Create(c echo.Context) error {
	var req TitleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	title, err := h.svc.Create(c.Request().Context(), middleware.CurrentUser(c), req.fields())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toTitleResponse(title))
}

// Update godoc
// @Summary Partially update title
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param title body TitleRequest true "Fields to change"
// @Success 200 {object} TitleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/ [patch]
func (h *TitleHandler) Update(c echo.Context) error {
	id, err := idParam(c, "title_id")
	if err != nil {
		return err
	}
	var req TitleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	title, err := h.svc.Update(c.Request().Context(), middleware.CurrentUser(c), id, req.fields())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toTitleResponse(title))
}

// Delete godoc
// @Summary Delete title
// @Description Removes the title with its reviews and their comments.
// @Tags titles
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/ [delete]
func (h *TitleHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "title_id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
