// Package docs registers the OpenAPI document served under /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/signup/individual": {
            "post": {"tags": ["auth"], "summary": "Sign up as an individual", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/signup/private-sector": {
            "post": {"tags": ["auth"], "summary": "Sign up as a private sector organisation", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Account pending approval"}, "429": {"description": "Too Many Requests"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Clear the session cookie", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/users": {
            "get": {"tags": ["users"], "summary": "Browse approved users", "parameters": [
                {"type": "string", "name": "role", "in": "query"},
                {"type": "string", "name": "search", "in": "query"},
                {"type": "integer", "name": "page", "in": "query"},
                {"type": "integer", "name": "limit", "in": "query"}
            ], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/users/me": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update own profile", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/users/{id}": {
            "get": {"tags": ["users"], "summary": "View a profile", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/connections": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["connections"], "summary": "List own connections", "parameters": [
                {"type": "string", "name": "status", "in": "query"},
                {"type": "string", "name": "direction", "in": "query"},
                {"type": "integer", "name": "page", "in": "query"},
                {"type": "integer", "name": "limit", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["connections"], "summary": "Send a connection request", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        },
        "/connections/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["connections"], "summary": "Accept or reject a pending request", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/connections/user/{userId}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["connections"], "summary": "Remove a connection or withdraw a request", "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/connections/status/{userId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["connections"], "summary": "Relationship with another user", "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/notifications": {
            "get": {"tags": ["notifications"], "summary": "Notifications visible to the caller", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Publish a notification", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/notifications/filter": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Notifications for one recipient", "parameters": [
                {"type": "string", "name": "recipient_type", "in": "query", "required": true},
                {"type": "string", "name": "recipient_id", "in": "query"}
            ], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/notifications/{id}/read": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Mark a notification as read", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/notifications/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Delete a notification", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/admin/statistics": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Platform statistics", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/admin/approvals/pending": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Companies awaiting approval", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/admin/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List non-TVET accounts", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}
        },
        "/admin/users/{id}/approve": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Approve a private sector account", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "TVET Connect API",
	Description:      "Networking platform linking individuals, private sector organisations and TVET institutions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
