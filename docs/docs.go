// Package docs registers the Swagger document served at /swagger/*. Keep it
// in step with the handler annotations.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Validate and submit a complete sign-up",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Username or email already taken"},
                    "422": {"description": "Field validation failed"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/v1/signup": {
            "post": {
                "produces": ["application/json"],
                "tags": ["signup"],
                "summary": "Start a sign-up form",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/signup/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["signup"],
                "summary": "Read a sign-up form",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/v1/signup/{id}/fields/{field}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["signup"],
                "summary": "Record a field value while typing",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "field", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/signup/{id}/fields/{field}/blur": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["signup"],
                "summary": "Record and validate a field value",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "field", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/signup/{id}/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["signup"],
                "summary": "Submit a sign-up form",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Submission in progress or already submitted"},
                    "422": {"description": "Form is not ready"}
                }
            }
        },
        "/v1/users/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Check whether a username is free",
                "parameters": [{"type": "string", "name": "username", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/users/{user_id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Edit the caller's profile",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/v1/users/{user_id}/avatar": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["users"],
                "summary": "Replace the caller's avatar",
                "responses": {"200": {"description": "OK"}, "415": {"description": "Unsupported media"}}
            }
        },
        "/v1/media": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["posts"],
                "summary": "Upload post media",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/posts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Create a post",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/posts/{post_id}/comments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Comment on a post",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/v1/posts/{post_id}/like": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "Like a post", "responses": {"202": {"description": "Accepted"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "Unlike a post", "responses": {"202": {"description": "Accepted"}}}
        },
        "/v1/posts/{post_id}/save": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "Save a post", "responses": {"202": {"description": "Accepted"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["posts"], "summary": "Unsave a post", "responses": {"202": {"description": "Accepted"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}
            }
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
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Photogram API",
	Description:      "Sign-up flow and social mutations for Photogram.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
