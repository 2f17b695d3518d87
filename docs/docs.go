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
        "/auth/login": {
            "post": {
                "description": "Authenticate the configured administrator. Returns a JWT carrying the admin role, required by the bookings listing.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Administrator log in",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "data contains token and token_type", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/calendars/{calendarID}/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Paginated booking log of a calendar, newest first. Requires an admin token.",
                "produces": ["application/json"],
                "tags": ["calendars"],
                "summary": "List bookings made through this service",
                "parameters": [
                    {"type": "string", "description": "Calendar ID", "name": "calendarID", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 25, max 200)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains items and pagination", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "description": "Book one slot of a calendar. The slot id is \"SLOT_<YYYY-MM-DD>_<HHMM>\" or an id returned by the slots listing. On success the returned slot already reflects the booking.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["calendars"],
                "summary": "Book a slot",
                "parameters": [
                    {"type": "string", "description": "Calendar ID", "name": "calendarID", "in": "path", "required": true},
                    {
                        "description": "Booking data",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/controllers.BookSlotRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "data contains slot and booking_id", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/calendars/{calendarID}/slots": {
            "get": {
                "description": "Fetch the slots of a calendar between two dates (inclusive) with their seat counts and status.",
                "produces": ["application/json"],
                "tags": ["calendars"],
                "summary": "List calendar slots",
                "parameters": [
                    {"type": "string", "description": "Calendar ID", "name": "calendarID", "in": "path", "required": true},
                    {"type": "string", "description": "First date (YYYY-MM-DD)", "name": "from", "in": "query"},
                    {"type": "string", "description": "Last date (YYYY-MM-DD)", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains slots", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.BookSlotRequest": {
            "type": "object",
            "properties": {
                "attendee_emails": {"type": "array", "items": {"type": "string"}},
                "meeting_type": {"type": "string"},
                "notes": {"type": "string"},
                "requester_email": {"type": "string"},
                "requester_name": {"type": "string"},
                "slot_id": {"type": "string"}
            }
        },
        "controllers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
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
	Title:            "Booking Calendar API",
	Description:      "Slot availability and booking for the Help Center calendar widgets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
