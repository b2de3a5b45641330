package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Music School API",
        "description": "Accounts, class catalog and enrollment for the music school",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Bearer token issuance"},
        {"name": "Users", "description": "User directory and role management"},
        {"name": "Instructors", "description": "Instructor listings"},
        {"name": "Classes", "description": "Class catalog and approval workflow"},
        {"name": "Selections", "description": "Student class selections"},
        {"name": "Ops", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["Ops"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["Ops"], "summary": "Readiness probe", "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}}
        },
        "/metrics": {
            "get": {"tags": ["Ops"], "summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/jwt": {
            "post": {
                "tags": ["Auth"],
                "summary": "Issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthenticated"},
                    "403": {"description": "Forbidden"}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Register a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "200": {"description": "User already exists", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/admin/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Check whether the caller is an admin",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users/instructor/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Check whether the caller is an instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users/admin/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Promote a user to admin",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/users/instructor/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Promote a user to instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/users/{id}": {
            "delete": {
                "tags": ["Users"],
                "summary": "Delete a user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/allInstructor": {
            "get": {"tags": ["Instructors"], "summary": "List instructors", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/topInstructor": {
            "get": {
                "tags": ["Instructors"],
                "summary": "Instructors ranked by student count",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/allClass": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "parameters": [{"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/topClass": {
            "get": {
                "tags": ["Classes"],
                "summary": "Classes ranked by enrollment",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes": {
            "post": {
                "tags": ["Classes"],
                "summary": "Submit a class for approval",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitClassRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid payload or unknown instructor"}, "403": {"description": "Forbidden"}}
            }
        },
        "/classes/{id}/approve": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Approve a pending class",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/classes/{id}/roster": {
            "get": {
                "tags": ["Classes"],
                "summary": "Export the class roster",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}, "404": {"description": "Not found"}}
            }
        },
        "/selectedClass": {
            "get": {
                "tags": ["Selections"],
                "summary": "List the caller's selections",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "email", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Selections"],
                "summary": "Select a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectClassRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Already selected"}}
            }
        },
        "/selectedClass/{classId}": {
            "delete": {
                "tags": ["Selections"],
                "summary": "Remove a selection",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "classId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        }
    },
    "definitions": {
        "TokenRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "RegisterUserRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "photoURL": {"type": "string"}
            }
        },
        "SubmitClassRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "image": {"type": "string"},
                "instructorId": {"type": "string"},
                "instructorName": {"type": "string"},
                "instructorEmail": {"type": "string"},
                "availableSeats": {"type": "integer"},
                "price": {"type": "number"}
            }
        },
        "SelectClassRequest": {
            "type": "object",
            "required": ["classId"],
            "properties": {
                "email": {"type": "string"},
                "classId": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string"},
                "instructorName": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
