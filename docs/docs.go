// Package docs registers the swagger spec served under /swagger.
// It is kept by hand next to the handler annotations.
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
        "/api/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the default profile overlaid by the saved one.",
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Load profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserState"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Stores the request body verbatim. It must be a JSON object; keys it\nleaves out keep their defaults on the next load.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Save profile",
                "parameters": [
                    {
                        "description": "profile to save",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.UserState"}
                    }
                ],
                "responses": {
                    "200": {"description": "profile as the next load returns it", "schema": {"$ref": "#/definitions/models.UserState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Deletes the saved profile; the defaults apply again.",
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Reset profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserState"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/profile/default": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Default profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserState"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/ws/profile": {
            "get": {
                "description": "Sends the current profile, then every saved or reset profile for the same user.<br>\n**Not a plain HTTP API.** Connect with ` + "`" + `ws://` + "`" + ` or ` + "`" + `wss://` + "`" + `.\nWhen auth is on, pass the JWT in the ` + "`" + `token` + "`" + ` query parameter.",
                "tags": ["WebSocket (Profile)"],
                "summary": "Profile change feed (WebSocket)",
                "parameters": [
                    {"type": "string", "description": "JWT token", "name": "token", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "101 Switching Protocols", "schema": {"type": "string"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Failed to load profile"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "models.UserInfo": {
            "type": "object",
            "properties": {
                "avatar": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "models.UserState": {
            "type": "object",
            "properties": {
                "userInfo": {"$ref": "#/definitions/models.UserInfo"}
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Profile Store API",
	Description:      "Loads and saves the chat user's profile.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
