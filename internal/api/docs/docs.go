// Package docs holds the OpenAPI description served under /swagger/.
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
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with an allowed email",
                "parameters": [
                    {"description": "Email to sign in with", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.signInResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/sign-out": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List feed posts",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive match on text and tags", "name": "search", "in": "query"},
                    {"type": "string", "description": "latest (default) or popular", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Items to skip", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "Maximum items, 0 for all", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.postList"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Publish a post",
                "parameters": [
                    {"description": "Post", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.postResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/posts/{id}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Remove a post",
                "parameters": [{"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/posts/{id}/like": {
            "post": {
                "tags": ["posts"],
                "summary": "Like or unlike a post",
                "parameters": [{"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/posts/{id}/comments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Comment on a post",
                "parameters": [
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.commentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.commentResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events in chronological order",
                "parameters": [{"type": "string", "description": "Only events on this YYYY-MM-DD date", "name": "date", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.eventList"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.eventResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/events/{id}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Remove an event",
                "parameters": [{"type": "string", "description": "Event id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/events/{id}/rsvp": {
            "post": {
                "tags": ["events"],
                "summary": "Join or leave an event",
                "parameters": [{"type": "string", "description": "Event id", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/pending": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Users awaiting approval, oldest first",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userList"}}}
            }
        },
        "/admin/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "All users ordered by email",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userList"}}}
            }
        },
        "/admin/users/{id}/approve": {
            "post": {
                "tags": ["admin"],
                "summary": "Approve a pending user",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}}
            }
        },
        "/admin/users/{id}/deny": {
            "post": {
                "tags": ["admin"],
                "summary": "Deny a user and remove their record",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}}
            }
        },
        "/admin/users/{id}/toggle-admin": {
            "post": {
                "tags": ["admin"],
                "summary": "Grant or revoke the admin role",
                "parameters": [{"type": "string", "description": "User id", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}}
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "field": {"type": "string"}}
        },
        "handler.signInRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "approved": {"type": "boolean"},
                "is_admin": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "handler.userList": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}, "count": {"type": "integer"}}
        },
        "handler.signInResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/handler.userResponse"}, "status": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/handler.userResponse"},
                "can_write": {"type": "boolean"},
                "read_only": {"type": "boolean"}
            }
        },
        "handler.createPostRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {"text": {"type": "string"}, "tags": {"type": "array", "items": {"type": "string"}}}
        },
        "handler.commentRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {"text": {"type": "string"}}
        },
        "handler.commentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "text": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.postResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "image": {"type": "string"},
                "author_id": {"type": "string"},
                "created_at": {"type": "string"},
                "likes": {"type": "array", "items": {"type": "string"}},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/handler.commentResponse"}},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.postList": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/handler.postResponse"}}, "count": {"type": "integer"}}
        },
        "handler.createEventRequest": {
            "type": "object",
            "required": ["title", "date", "time"],
            "properties": {
                "title": {"type": "string"},
                "date": {"type": "string", "example": "2024-05-13"},
                "time": {"type": "string", "example": "10:00"},
                "expected_attendance": {"type": "integer", "minimum": 0}
            }
        },
        "handler.eventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "expected_attendance": {"type": "integer"},
                "attendees": {"type": "array", "items": {"type": "string"}},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.eventList": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/handler.eventResponse"}}, "count": {"type": "integer"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Community Board API",
	Description:      "Campus community feed, events calendar and admin console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
