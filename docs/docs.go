// Package docs registers the OpenAPI description served under /swagger/.
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
        "/api/v1/test": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthEnvelope"}}
                }
            }
        },
        "/api/v1/users/sendMailService": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Send a transactional account email",
                "parameters": [
                    {"description": "recipient, subject and optional code", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.SendMailRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/users/resetPasswordDirect": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Reset a password with a verification code",
                "parameters": [
                    {"description": "email, new password and code", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/notifications/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Send a push notification to one device",
                "parameters": [
                    {"description": "token, title, body and data", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.SendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SendEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/notifications/save": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Store a notification and optionally push it",
                "parameters": [
                    {"description": "notification fields", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.SaveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.SaveEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/notifications/user-token/{userId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Look up a user's push token",
                "parameters": [{"type": "string", "description": "user id", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DataEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/notifications/get-fcm-token": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Issue a short-lived access token for notification clients",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/notifications/test-send": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Echo a notification without delivering it",
                "parameters": [
                    {"description": "title, body and data", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.PreviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PreviewEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/files/{fileId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Get the metadata of an uploaded file",
                "parameters": [{"type": "string", "description": "file id", "name": "fileId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DataEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        },
        "/api/v1/patients/{patientId}/files": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload patient files (JPEG, PNG or PDF, up to 10 files of 10MB)",
                "parameters": [
                    {"type": "string", "description": "patient id", "name": "patientId", "in": "path", "required": true},
                    {"type": "file", "description": "files", "name": "files", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.DataEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "handler.MessageEnvelope": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.DataEnvelope": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "data": {}}
        },
        "handler.HealthEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}, "message": {"type": "string"},
                "timestamp": {"type": "string"}, "environment": {"type": "string"}
            }
        },
        "handler.SendMailRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "subject": {"type": "string"}, "code": {"type": "string"}}
        },
        "handler.ResetPasswordRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "newPassword": {"type": "string"}, "verificationCode": {"type": "string"}}
        },
        "handler.SendRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}, "title": {"type": "string"}, "body": {"type": "string"},
                "data": {"type": "object", "additionalProperties": true}
            }
        },
        "handler.SendResponse": {
            "type": "object",
            "properties": {"fcm": {}, "firestoreId": {"type": "string"}}
        },
        "handler.SendEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}, "message": {"type": "string"}, "projectId": {"type": "string"},
                "response": {"$ref": "#/definitions/handler.SendResponse"}
            }
        },
        "handler.SaveRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"}, "body": {"type": "string"},
                "senderId": {"type": "string"}, "recipientId": {"type": "string"}, "type": {"type": "string"},
                "appointmentId": {"type": "string"}, "prescriptionId": {"type": "string"},
                "data": {"type": "object", "additionalProperties": true}, "token": {"type": "string"}
            }
        },
        "handler.SaveEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}, "message": {"type": "string"},
                "notificationId": {"type": "string"}, "fcm": {}
            }
        },
        "handler.TokenEnvelope": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "token": {"type": "string"}, "expiresIn": {"type": "string"}}
        },
        "handler.PreviewRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"}, "body": {"type": "string"},
                "data": {"type": "object", "additionalProperties": true}
            }
        },
        "handler.PreviewEnvelope": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "message": {"type": "string"}, "notification": {}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MediLink notifier API",
	Description:      "Transactional mail, password reset and push notification relay.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
