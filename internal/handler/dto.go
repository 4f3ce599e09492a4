package handler

import (
	"time"

	"yamdb/internal/model"
	"yamdb/internal/service"
)

// UserResponse is the public shape of a user.
type UserResponse struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
	Role      model.Role `json:"role"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// SluggedResponse is the shape of a category or genre.
type SluggedResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toCategoryResponse(c *model.Category) SluggedResponse {
	return SluggedResponse{Name: c.Name, Slug: c.Slug}
}

func toGenreResponse(g *model.Genre) SluggedResponse {
	return SluggedResponse{Name: g.Name, Slug: g.Slug}
}

// TitleResponse is the read shape of a title.
type TitleResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []SluggedResponse `json:"genre"`
	Category    *SluggedResponse  `json:"category"`
}

func toTitleResponse(t *model.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       make([]SluggedResponse, 0, len(t.Genres)),
	}
	if t.Rating.Valid {
		rating := t.Rating.Decimal.Round(2).InexactFloat64()
		resp.Rating = &rating
	}
	for i := range t.Genres {
		resp.Genre = append(resp.Genre, toGenreResponse(&t.Genres[i]))
	}
	if t.Category != nil {
		category := toCategoryResponse(t.Category)
		resp.Category = &category
	}
	return resp
}

// ReviewResponse is the public shape of a review.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func toReviewResponse(r *model.Review) ReviewResponse {
	return ReviewResponse{ID: r.ID, Text: r.Text, Author: r.Author.Username, Score: r.Score, PubDate: r.PubDate}
}

// CommentResponse is the public shape of a comment.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Text: c.Text, Author: c.Author.Username, PubDate: c.PubDate}
}

// UserRequest is the admin and self-service user payload.
type UserRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// CreateUserRequest requires username and email.
type CreateUserRequest struct {
	Username  *string `json:"username" validate:"required,max=150"`
	Email     *string `json:"email" validate:"required,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (r UserRequest) fields() service.UserFields {
	f := service.UserFields{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
	if r.Role != nil {
		role := model.Role(*r.Role)
		f.Role = &role
	}
	return f
}

// TitleRequest is the title write payload. Genre and category are slugs.
type TitleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

func (r TitleRequest) fields() service.TitleFields {
	return service.TitleFields{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Genre:       r.Genre,
		Category:    r.Category,
	}
}
