// Package docs registers the OpenAPI description served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/signup/": {
            "post": {
                "tags": ["auth"],
                "summary": "Register or re-request a confirmation code",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.SignupRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SignupResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}
            }
        },
        "/auth/token/": {
            "post": {
                "tags": ["auth"],
                "summary": "Obtain an access token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.TokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}
            }
        },
        "/users/": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create user", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.UserResponse"}}}}
        },
        "/users/me/": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Current user's profile", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Edit current user's profile", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}}}}
        },
        "/users/{username}/": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get user by username", "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Partially update a user", "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user", "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/categories/": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create category", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.SluggedResponse"}}}}
        },
        "/categories/{slug}/": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Delete category", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/genres/": {
            "get": {"tags": ["genres"], "summary": "List genres", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["genres"], "summary": "Create genre", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.SluggedResponse"}}}}
        },
        "/genres/{slug}/": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["genres"], "summary": "Delete genre", "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/titles/": {
            "get": {"tags": ["titles"], "summary": "List titles", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["titles"], "summary": "Create title", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TitleResponse"}}}}
        },
        "/titles/{title_id}/": {
            "get": {"tags": ["titles"], "summary": "Get title", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TitleResponse"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["titles"], "summary": "Partially update title", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TitleResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["titles"], "summary": "Delete title", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/titles/{title_id}/reviews/": {
            "get": {"tags": ["reviews"], "summary": "List reviews of a title", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Post a review", "parameters": [{"type": "integer", "name": "title_id", "in": "path", "required": true}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ReviewResponse"}}}}
        },
        "/titles/{title_id}/reviews/{review_id}/": {
            "get": {"tags": ["reviews"], "summary": "Get review", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ReviewResponse"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Edit a review", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ReviewResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Delete a review", "responses": {"204": {"description": "No Content"}}}
        },
        "/titles/{title_id}/reviews/{review_id}/comments/": {
            "get": {"tags": ["comments"], "summary": "List comments of a review", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Comment on a review", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CommentResponse"}}}}
        },
        "/titles/{title_id}/reviews/{review_id}/comments/{comment_id}/": {
            "get": {"tags": ["comments"], "summary": "Get comment", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommentResponse"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Edit a comment", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommentResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Delete a comment", "responses": {"204": {"description": "No Content"}}}
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "handler.SignupRequest": {
            "type": "object",
            "required": ["email", "username"],
            "properties": {"email": {"type": "string", "maxLength": 254}, "username": {"type": "string", "maxLength": 150}}
        },
        "handler.SignupResponse": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "username": {"type": "string"}}
        },
        "handler.TokenRequest": {
            "type": "object",
            "required": ["confirmation_code", "username"],
            "properties": {"confirmation_code": {"type": "string"}, "username": {"type": "string"}}
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "bio": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "moderator", "admin"]},
                "username": {"type": "string"}
            }
        },
        "handler.SluggedResponse": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}
        },
        "handler.TitleResponse": {
            "type": "object",
            "properties": {
                "category": {"$ref": "#/definitions/handler.SluggedResponse"},
                "description": {"type": "string"},
                "genre": {"type": "array", "items": {"$ref": "#/definitions/handler.SluggedResponse"}},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "rating": {"type": "number"},
                "year": {"type": "integer"}
            }
        },
        "handler.ReviewResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "integer"},
                "pub_date": {"type": "string"},
                "score": {"type": "integer", "minimum": 1, "maximum": 10},
                "text": {"type": "string"}
            }
        },
        "handler.CommentResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "integer"},
                "pub_date": {"type": "string"},
                "text": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "YaMDb API",
	Description:      "Reviews of books, films and music with ratings, comments and role-based moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
