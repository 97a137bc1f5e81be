package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutoring Service API",
        "description": "Tasks and grading, appointments, messages, videos and meetings for teachers and students",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "tasks", "description": "Task assignment, answers and grading"},
        {"name": "appointments", "description": "Tutoring sessions"},
        {"name": "messages", "description": "Polled direct messages"},
        {"name": "users", "description": "Current user and role selection"},
        {"name": "videos", "description": "Featured course videos"},
        {"name": "ai-help", "description": "Templated study guidance"},
        {"name": "analytics", "description": "Grade statistics and export"},
        {"name": "meetings", "description": "Conferencing rooms and tokens"}
    ],
    "paths": {
        "/tasks": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks",
                "parameters": [{"name": "studentId", "in": "query", "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"tasks": {"type": "array", "items": {"$ref": "#/definitions/Task"}}}}},
                    "401": {"$ref": "#/responses/Error"},
                    "403": {"$ref": "#/responses/Error"}
                }
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create task",
                "parameters": [{"name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"task": {"$ref": "#/definitions/Task"}}}},
                    "400": {"$ref": "#/responses/Error"},
                    "403": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"}
                }
            },
            "patch": {
                "tags": ["tasks"],
                "summary": "Answer or grade task",
                "parameters": [{"name": "task", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTaskRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"task": {"$ref": "#/definitions/Task"}}}},
                    "400": {"$ref": "#/responses/Error"},
                    "403": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"},
                    "409": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/appointments": {
            "get": {
                "tags": ["appointments"],
                "summary": "List appointments",
                "parameters": [{"name": "as", "in": "query", "type": "string", "enum": ["teacher"]}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"appointments": {"type": "array", "items": {"$ref": "#/definitions/Appointment"}}}}}}
            },
            "post": {
                "tags": ["appointments"],
                "summary": "Create appointment",
                "parameters": [{"name": "appointment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAppointmentRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"appointment": {"$ref": "#/definitions/Appointment"}}}},
                    "400": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"}
                }
            },
            "patch": {
                "tags": ["appointments"],
                "summary": "Update appointment",
                "parameters": [{"name": "appointment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAppointmentRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"appointment": {"$ref": "#/definitions/Appointment"}}}},
                    "403": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/messages": {
            "get": {
                "tags": ["messages"],
                "summary": "Get message thread",
                "parameters": [{"name": "userId", "in": "query", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"messages": {"type": "array", "items": {"$ref": "#/definitions/Message"}}}}},
                    "400": {"$ref": "#/responses/Error"}
                }
            },
            "post": {
                "tags": ["messages"],
                "summary": "Send message",
                "parameters": [{"name": "message", "in": "body", "required": true, "schema": {"type": "object", "properties": {"receiverId": {"type": "string"}, "content": {"type": "string"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"message": {"$ref": "#/definitions/Message"}}}},
                    "400": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"}
                }
            },
            "patch": {
                "tags": ["messages"],
                "summary": "Mark messages read",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"senderId": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"success": {"type": "boolean"}}}}}
            }
        },
        "/user": {
            "get": {
                "tags": ["users"],
                "summary": "Get current user, created on first call",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"user": {"$ref": "#/definitions/User"}}}}}
            },
            "put": {
                "tags": ["users"],
                "summary": "Select role",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"role": {"type": "string", "enum": ["student", "teacher"]}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"user": {"$ref": "#/definitions/User"}}}},
                    "400": {"$ref": "#/responses/Error"},
                    "409": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/videos": {
            "get": {
                "tags": ["videos"],
                "summary": "List featured videos",
                "security": [],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "properties": {"videos": {"type": "array", "items": {"$ref": "#/definitions/Video"}}}}}}
            },
            "post": {
                "tags": ["videos"],
                "summary": "Create video",
                "parameters": [{"name": "video", "in": "body", "required": true, "schema": {"type": "object", "properties": {"title": {"type": "string"}, "youtubeId": {"type": "string"}, "subject": {"type": "string"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"video": {"$ref": "#/definitions/Video"}}}},
                    "403": {"$ref": "#/responses/Error"}
                }
            },
            "patch": {
                "tags": ["videos"],
                "summary": "Record video view",
                "security": [],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"id": {"type": "string"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"video": {"$ref": "#/definitions/Video"}}}},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/ai-help": {
            "post": {
                "tags": ["ai-help"],
                "summary": "Templated study guidance",
                "security": [],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"question": {"type": "string"}, "answer": {"type": "string"}, "isCorrect": {"type": "boolean"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"response": {"type": "string"}}}},
                    "400": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/analytics": {
            "get": {
                "tags": ["analytics"],
                "summary": "Grade statistics of the caller",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AnalyticsSummary"}}}
            }
        },
        "/analytics/export": {
            "get": {
                "tags": ["analytics"],
                "summary": "Grade ledger workbook",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "xlsx file", "schema": {"type": "file"}}}
            }
        },
        "/meetings": {
            "post": {
                "tags": ["meetings"],
                "summary": "Create meeting room",
                "parameters": [{"name": "request", "in": "body", "schema": {"type": "object", "properties": {"appointmentId": {"type": "string"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"roomId": {"type": "string"}, "link": {"type": "string"}, "appointmentId": {"type": "string"}}}},
                    "403": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/meetings/token": {
            "post": {
                "tags": ["meetings"],
                "summary": "Issue meeting token",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"roomId": {"type": "string"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"appId": {"type": "integer"}, "roomId": {"type": "string"}, "userId": {"type": "string"}, "userName": {"type": "string"}, "token": {"type": "string"}, "expiresAt": {"type": "string", "format": "date-time"}}}},
                    "503": {"$ref": "#/responses/Error"}
                }
            }
        }
    },
    "responses": {
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "details": {"type": "object"}}
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "teacher"]},
                "roleSelected": {"type": "boolean"}
            }
        },
        "Grade": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentId": {"type": "string"},
                "taskId": {"type": "string"},
                "points": {"type": "integer"},
                "feedback": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacherId": {"type": "string"},
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "question": {"type": "string"},
                "points": {"type": "integer"},
                "answer": {"type": "string"},
                "isCorrect": {"type": "boolean"},
                "feedback": {"type": "string"},
                "awardedPoints": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "grades": {"type": "array", "items": {"$ref": "#/definitions/Grade"}}
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "required": ["studentId", "question"],
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"},
                "question": {"type": "string"},
                "points": {"type": "integer", "default": 10}
            }
        },
        "UpdateTaskRequest": {
            "type": "object",
            "required": ["taskId"],
            "properties": {
                "taskId": {"type": "string"},
                "answer": {"type": "string"},
                "isCorrect": {"type": "boolean"},
                "feedback": {"type": "string"},
                "points": {"type": "integer"}
            }
        },
        "Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentId": {"type": "string"},
                "teacherId": {"type": "string"},
                "teacherName": {"type": "string"},
                "subject": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "duration": {"type": "integer"},
                "notes": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "completed", "cancelled"]},
                "meetingLink": {"type": "string"}
            }
        },
        "CreateAppointmentRequest": {
            "type": "object",
            "required": ["teacherId", "subject", "date"],
            "properties": {
                "teacherId": {"type": "string"},
                "teacherName": {"type": "string"},
                "subject": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "duration": {"type": "integer", "default": 60},
                "notes": {"type": "string"}
            }
        },
        "UpdateAppointmentRequest": {
            "type": "object",
            "required": ["id", "status"],
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "completed", "cancelled"]},
                "meetingLink": {"type": "string"}
            }
        },
        "UserSummary": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "image": {"type": "string"}}
        },
        "Message": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "senderId": {"type": "string"},
                "receiverId": {"type": "string"},
                "content": {"type": "string"},
                "read": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "sender": {"$ref": "#/definitions/UserSummary"},
                "receiver": {"$ref": "#/definitions/UserSummary"}
            }
        },
        "Video": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "youtubeId": {"type": "string"},
                "subject": {"type": "string"},
                "views": {"type": "integer"},
                "featured": {"type": "boolean"}
            }
        },
        "AnalyticsSummary": {
            "type": "object",
            "properties": {
                "totalPoints": {"type": "integer"},
                "totalTasks": {"type": "integer"},
                "averageScore": {"type": "number"},
                "recentGrades": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "taskName": {"type": "string"},
                            "points": {"type": "integer"},
                            "feedback": {"type": "string"},
                            "date": {"type": "string", "format": "date-time"}
                        }
                    }
                }
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
