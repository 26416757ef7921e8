package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "STEM Spark API",
        "description": "Volunteer hours submission, review and reporting",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "VolunteerHours", "description": "Intern volunteer hours"},
        {"name": "Admin", "description": "Review queue and reporting"}
    ],
    "paths": {
        "/volunteer-hours": {
            "post": {
                "tags": ["VolunteerHours"],
                "summary": "Submit volunteer hours for review",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitVolunteerHoursRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Invalid intern account", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/volunteer-hours/me": {
            "get": {
                "tags": ["VolunteerHours"],
                "summary": "List the caller's volunteer hours",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/volunteer-hours/me/stats": {
            "get": {
                "tags": ["VolunteerHours"],
                "summary": "Volunteer hours statistics for the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/volunteer-hours/me/export": {
            "get": {
                "tags": ["VolunteerHours"],
                "summary": "Download the caller's volunteer log",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/volunteer-hours/sessions/{sessionId}": {
            "post": {
                "tags": ["VolunteerHours"],
                "summary": "Log approved hours for a completed tutoring session",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SessionHoursRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session not found or not completed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Hours already logged for session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/volunteer-hours/pending": {
            "get": {
                "tags": ["Admin"],
                "summary": "List volunteer hours awaiting review",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "default": 100, "maximum": 500, "description": "Page size, capped at 500"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "One page of the queue; pagination.total_count counts every pending entry", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/volunteer-hours/overview": {
            "get": {
                "tags": ["Admin"],
                "summary": "Volunteer hours dashboard counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/volunteer-hours/{id}/approve": {
            "post": {
                "tags": ["Admin"],
                "summary": "Approve pending volunteer hours",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/ApproveVolunteerHoursRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Volunteer hours not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Hours are not pending approval", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/volunteer-hours/{id}/reject": {
            "post": {
                "tags": ["Admin"],
                "summary": "Reject pending volunteer hours",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RejectVolunteerHoursRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Rejection reason is required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Hours are not pending approval", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/interns/{id}/volunteer-hours": {
            "get": {
                "tags": ["Admin"],
                "summary": "List an intern's volunteer hours",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/interns/{id}/volunteer-hours/stats": {
            "get": {
                "tags": ["Admin"],
                "summary": "Volunteer hours statistics for an intern",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/action-logs": {
            "get": {
                "tags": ["Admin"],
                "summary": "Recent admin actions",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitVolunteerHoursRequest": {
            "type": "object",
            "required": ["activity_date", "hours"],
            "properties": {
                "activity_date": {"type": "string", "format": "date"},
                "activity_type": {"type": "string"},
                "activity_description": {"type": "string"},
                "description": {"type": "string"},
                "hours": {"type": "number", "minimum": 0, "exclusiveMinimum": true, "maximum": 24},
                "reference_id": {"type": "string"}
            }
        },
        "SessionHoursRequest": {
            "type": "object",
            "required": ["hours"],
            "properties": {
                "hours": {"type": "number"},
                "note": {"type": "string"}
            }
        },
        "ApproveVolunteerHoursRequest": {
            "type": "object",
            "properties": {
                "note": {"type": "string"}
            }
        },
        "RejectVolunteerHoursRequest": {
            "type": "object",
            "required": ["rejection_reason"],
            "properties": {
                "rejection_reason": {"type": "string"},
                "note": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
