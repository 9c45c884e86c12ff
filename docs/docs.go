// Package docs holds the swagger spec served at /swagger. Regenerate it with
// swag init -g cmd/server/main.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Returns the health status of the API and its database",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/shared/{gallery_id}/access": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shared"],
                "summary": "Unlock a password protected gallery",
                "parameters": [
                    {"type": "string", "description": "Gallery ID (UUID)", "name": "gallery_id", "in": "path", "required": true},
                    {"description": "Password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AccessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AccessResponse"}},
                    "400": {"description": "password is required", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "incorrect password", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "gallery not found or not public", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "410": {"description": "gallery has expired", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.AccessRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "models.AccessResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_at": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and the Supabase JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        },
        "GalleryAccess": {
            "description": "Type \"Bearer\" followed by a space and the gallery access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FotoProof API",
	Description:      "Backend API for photo proofing: photographers share galleries, clients pick their favourite photos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
