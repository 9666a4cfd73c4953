// Package docs registers the OpenAPI description served at /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "description": "\"mqtt\" is connected, disconnected or disabled. A lost broker does not make the remote unhealthy.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/send_ir": {
            "get": {
                "description": "Changes one appliance setting and transmits the full state. Commands: temp, mode, fan, on, off, swing_mode.",
                "produces": ["text/plain"],
                "tags": ["remote"],
                "summary": "Send an IR command",
                "parameters": [
                    {"enum": ["temp", "mode", "fan", "on", "off", "swing_mode"], "type": "string", "description": "Command name", "name": "command", "in": "query", "required": true},
                    {"type": "string", "example": "22", "description": "Command value", "name": "value", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "confirmation, e.g. Temperature = 22", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Changes one appliance setting and transmits the full state. Commands: temp, mode, fan, on, off, swing_mode.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/plain"],
                "tags": ["remote"],
                "summary": "Send an IR command",
                "parameters": [
                    {"enum": ["temp", "mode", "fan", "on", "off", "swing_mode"], "type": "string", "description": "Command name", "name": "command", "in": "query", "required": true},
                    {"type": "string", "example": "22", "description": "Command value", "name": "value", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "confirmation, e.g. Temperature = 22", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        },
        "/temp": {
            "get": {
                "produces": ["application/json"],
                "tags": ["remote"],
                "summary": "Ambient climate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ClimateReading"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an operator account",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/remote/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Held appliance state and busy indicator",
                "produces": ["application/json"],
                "tags": ["remote"],
                "summary": "Remote state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RemoteStatus"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/logs/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Every /send_ir request is recorded, newest first. Dates accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List transmission audit events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "name": "to", "in": "query"},
                    {"enum": ["TRANSMIT", "REJECTED", "TRANSMIT_FAILED"], "type": "string", "name": "type", "in": "query"},
                    {"type": "string", "example": "temp", "description": "Command name as sent to /send_ir", "name": "command", "in": "query"},
                    {"type": "integer", "description": "Maximum events (default 100, max 1000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.logsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a WebSocket. Sends {\"type\":\"status\",\"data\":RemoteStatus} on connect and again whenever the state or the busy indicator changes. The status is polled every interval.",
                "tags": ["remote"],
                "summary": "Stream remote status",
                "parameters": [
                    {"type": "string", "example": "100ms", "description": "Poll period as a Go duration, 50ms..10s", "name": "interval", "in": "query"},
                    {"type": "integer", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "s3cr3t"},
                "username": {"type": "string", "example": "operator"}
            }
        },
        "handlers.logsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/models.TransmissionEvent"}}
            }
        },
        "models.TransmissionEvent": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "occurred_at": {"type": "string"},
                "type": {"type": "string", "enum": ["TRANSMIT", "REJECTED", "TRANSMIT_FAILED"]},
                "command": {"type": "string"},
                "value": {"type": "string"},
                "description": {"type": "string"},
                "metadata": {}
            }
        },
        "models.ApplianceState": {
            "type": "object",
            "properties": {
                "fan_speed": {"type": "string", "enum": ["auto", "high", "medium", "low", "quiet"]},
                "mode": {"type": "string", "enum": ["auto", "cool", "dry", "fan", "heat"]},
                "power": {"type": "boolean"},
                "swing": {"type": "string", "enum": ["off", "vertical", "horizontal", "both"]},
                "temperature": {"type": "integer"}
            }
        },
        "models.ClimateReading": {
            "type": "object",
            "properties": {
                "humidity": {"type": "number"},
                "temperature": {"type": "number"}
            }
        },
        "models.RemoteStatus": {
            "type": "object",
            "properties": {
                "indicator_armed": {"type": "boolean"},
                "indicator_until": {"type": "string"},
                "state": {"$ref": "#/definitions/models.ApplianceState"}
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
	Title:            "ir-climate",
	Description:      "Network-controlled infrared remote for an air conditioner.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
