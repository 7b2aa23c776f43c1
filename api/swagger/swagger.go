package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Class Routine Management API",
        "description": "Slot allocation, validation and export for weekly class routines",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Routine", "description": "Routine generation and session management"},
        {"name": "Slots", "description": "Direct slot mutations"},
        {"name": "Commands", "description": "Free-text command surface"},
        {"name": "Catalog", "description": "Read-only reference data"},
        {"name": "Export", "description": "CSV, PDF and Markdown export"},
        {"name": "Auth", "description": "Admin authentication"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and receive an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get the full reference catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/sections": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List sections",
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "group", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/routine": {
            "get": {
                "tags": ["Routine"],
                "summary": "Show the current routine",
                "parameters": [
                    {"name": "section", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Routine"],
                "summary": "Clear the session routine",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/routine/generate": {
            "post": {
                "tags": ["Routine"],
                "summary": "Generate routines for a section or class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateRoutineRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Section or class not found"},
                    "409": {"description": "No room available"}
                }
            }
        },
        "/routine/reschedule": {
            "post": {
                "tags": ["Routine"],
                "summary": "Move a subject's classes off a day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RescheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No matching entries"}
                }
            }
        },
        "/routine/validate": {
            "get": {
                "tags": ["Routine"],
                "summary": "Validate the current routine",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/routine/save": {
            "post": {
                "tags": ["Routine"],
                "summary": "Persist the current routine",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/routine/load": {
            "post": {
                "tags": ["Routine"],
                "summary": "Replace the session routine with the persisted one",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/routine/slots": {
            "put": {
                "tags": ["Slots"],
                "summary": "Insert or overwrite one slot entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/routine/slots/move": {
            "post": {
                "tags": ["Slots"],
                "summary": "Relocate one slot entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Slot not found"}
                }
            }
        },
        "/routine/slots/swap": {
            "post": {
                "tags": ["Slots"],
                "summary": "Exchange the payloads of two slot entries",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SwapSlotsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Slot not found"}
                }
            }
        },
        "/routine/slots/remove": {
            "post": {
                "tags": ["Slots"],
                "summary": "Delete one slot entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RemoveSlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/routine/export/csv": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the routine as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/routine/export/pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the routine as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/routine/export/markdown": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the routine as Markdown grids",
                "produces": ["text/markdown"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/commands": {
            "post": {
                "tags": ["Commands"],
                "summary": "Resolve a free-text prompt and run the resulting command",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommandRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SlotEntry": {
            "type": "object",
            "properties": {
                "section_code": {"type": "string"},
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "subject_id": {"type": "integer"},
                "teacher_id": {"type": "integer"},
                "room_id": {"type": "integer"},
                "shift_log_id": {"type": "integer"}
            }
        },
        "Violation": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "resource_id": {"type": "integer"},
                "sections": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "GenerateRoutineRequest": {
            "type": "object",
            "properties": {
                "sectionCode": {"type": "string"},
                "className": {"type": "string"},
                "groupCode": {"type": "string"}
            }
        },
        "RescheduleRequest": {
            "type": "object",
            "properties": {
                "sectionCode": {"type": "string"},
                "subject": {"type": "string"},
                "avoidDay": {"type": "string"}
            },
            "required": ["subject", "avoidDay"]
        },
        "UpsertSlotRequest": {
            "type": "object",
            "properties": {
                "sectionCode": {"type": "string"},
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "subjectId": {"type": "integer"},
                "teacherId": {"type": "integer"},
                "roomId": {"type": "integer"},
                "shiftLogId": {"type": "integer"}
            },
            "required": ["sectionCode", "day", "period", "subjectId", "teacherId", "roomId"]
        },
        "MoveSlotRequest": {
            "type": "object",
            "properties": {
                "sectionCode": {"type": "string"},
                "fromDay": {"type": "string"},
                "fromPeriod": {"type": "integer"},
                "toDay": {"type": "string"},
                "toPeriod": {"type": "integer"}
            },
            "required": ["sectionCode", "fromDay", "fromPeriod", "toDay", "toPeriod"]
        },
        "SwapSlotsRequest": {
            "type": "object",
            "properties": {
                "sectionA": {"type": "string"},
                "dayA": {"type": "string"},
                "periodA": {"type": "integer"},
                "sectionB": {"type": "string"},
                "dayB": {"type": "string"},
                "periodB": {"type": "integer"}
            },
            "required": ["sectionA", "dayA", "periodA", "sectionB", "dayB", "periodB"]
        },
        "RemoveSlotRequest": {
            "type": "object",
            "properties": {
                "sectionCode": {"type": "string"},
                "day": {"type": "string"},
                "period": {"type": "integer"}
            },
            "required": ["sectionCode", "day", "period"]
        },
        "CommandRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string"}
            },
            "required": ["prompt"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
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
