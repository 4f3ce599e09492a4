package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"yamdb/internal/middleware"
	"yamdb/internal/service"
)

// SluggedRequest creates a category or genre.
type SluggedRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50"`
}

// CategoryHandler serves /categories/.
type CategoryHandler struct {
	svc      service.CategoryService
	pageSize int
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(svc service.CategoryService, pageSize int) *CategoryHandler {
	return &CategoryHandler{svc: svc, pageSize: pageSize}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param search query string false "Name substring"
// @Param page query int false "Page number"
// @Success 200 {object} Page[SluggedResponse]
// @Router /categories/ [get]
func (h *CategoryHandler) List(c echo.Context) error {
	opts, err := listOptions(c, h.pageSize)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.Request().Context(), c.QueryParam("search"), opts)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPage(c, opts, res, toCategoryResponse))
}

// Create godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body SluggedRequest true "Category"
// @Success 201 {object} SluggedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories/ [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req SluggedRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.svc.Create(c.Request().Context(), middleware.CurrentUser(c), req.Name, req.Slug)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// Delete godoc
// @Summary Delete category
// @Description Titles in the category keep existing with no category.
// @Tags categories
// @Security BearerAuth
// @Param slug path string true "Category slug"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{slug}/ [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GenreHandler serves /genres/.
type GenreHandler struct {
	svc      service.GenreService
	pageSize int
}

// NewGenreHandler creates a genre handler.
func NewGenreHandler(svc service.GenreService, pageSize int) *GenreHandler {
	return &GenreHandler{svc: svc, pageSize: pageSize}
}

// List godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Param search query string false "Name substring"
// @Param page query int false "Page number"
// @Success 200 {object} Page[SluggedResponse]
// @Router /genres/ [get]
func (h *GenreHandler) List(c echo.Context) error {
	opts, err := listOptions(c, h.pageSize)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.Request().Context(), c.QueryParam("search"), opts)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPage(c, opts, res, toGenreResponse))
}

// Create godoc
// @Summary Create genre
// @Tags genres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param genre body SluggedRequest true "Genre"
// @Success 201 {object} SluggedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /genres/ [post]
func (h *GenreHandler) Create(c echo.Context) error {
	var req SluggedRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	genre, err := h.svc.Create(c.Request().Context(), middleware.CurrentUser(c), req.Name, req.Slug)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toGenreResponse(genre))
}

// Delete godoc
// @Summary Delete genre
// @Tags genres
// @Security BearerAuth
// @Param slug path string true "Genre slug"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /genres/{slug}/ [delete]
func (h *GenreHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
