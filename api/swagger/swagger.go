package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Verticx API",
        "description": "School administration backend: attendance calendars, leave, change-request workflow and dashboards.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "tags": [
                    "System"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check covering Postgres and Redis",
                "tags": [
                    "System"
                ],
                "responses": {
                    "200": {
                        "description": "Ready, possibly with a degraded cache"
                    },
                    "503": {
                        "description": "Database unreachable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "tags": [
                    "System"
                ],
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "summary": "Log in",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoginRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "summary": "Current user",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/stats": {
            "get": {
                "summary": "Process counters",
                "tags": [
                    "System"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/attendance/sheets": {
            "post": {
                "summary": "Save an attendance sheet",
                "tags": [
                    "Attendance"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SaveSheetRequest"
                        }
                    }
                ]
            },
            "get": {
                "summary": "Get an attendance sheet",
                "tags": [
                    "Attendance"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "date",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "courseId",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "branchId",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/people/{id}/attendance": {
            "get": {
                "summary": "List a person's attendance records",
                "tags": [
                    "Attendance"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/people/{id}/calendar": {
            "get": {
                "summary": "Attendance calendar of a month",
                "tags": [
                    "Attendance"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "month",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/people/{id}/calendar/export": {
            "get": {
                "summary": "Download a month calendar",
                "tags": [
                    "Attendance"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "month",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/people/{id}/leaves": {
            "get": {
                "summary": "List a person's leave applications",
                "tags": [
                    "Leave"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/leaves": {
            "post": {
                "summary": "Apply for leave",
                "tags": [
                    "Leave"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ApplyLeaveRequest"
                        }
                    }
                ]
            },
            "get": {
                "summary": "List branch leave applications",
                "tags": [
                    "Leave"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "branchId",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/leaves/{id}/review": {
            "post": {
                "summary": "Approve or reject leave",
                "tags": [
                    "Leave"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "403": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReviewRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/change-requests": {
            "post": {
                "summary": "Submit a change request",
                "tags": [
                    "Change Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubmitChangeRequest"
                        }
                    }
                ]
            },
            "get": {
                "summary": "List change requests",
                "tags": [
                    "Change Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "entityType",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "branchId",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/change-requests/{id}": {
            "get": {
                "summary": "Get a change request",
                "tags": [
                    "Change Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/change-requests/{id}/review": {
            "post": {
                "summary": "Approve or reject a change request",
                "tags": [
                    "Change Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "403": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReviewRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/fee-templates": {
            "get": {
                "summary": "List",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "lifecycle",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            },
            "post": {
                "summary": "Create a draft",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/FeeTemplateRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/fee-templates/{id}": {
            "get": {
                "summary": "Get",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "put": {
                "summary": "Edit a draft",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/FeeTemplateRequest"
                        }
                    }
                ]
            },
            "delete": {
                "summary": "Delete a draft",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/fee-templates/{id}/commit": {
            "post": {
                "summary": "Commit a draft",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/fee-templates/{id}/update-requests": {
            "post": {
                "summary": "Request an update of a committed record",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EntityUpdateRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/fee-templates/{id}/deletion-requests": {
            "post": {
                "summary": "Request deletion of a committed record",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EntityDeletionRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/syllabus/lectures": {
            "get": {
                "summary": "List",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "courseId",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "post": {
                "summary": "Create a draft",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SyllabusLectureRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/syllabus/lectures/{id}": {
            "get": {
                "summary": "Get",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "put": {
                "summary": "Edit a draft",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SyllabusLectureRequest"
                        }
                    }
                ]
            },
            "delete": {
                "summary": "Delete a draft",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/syllabus/lectures/{id}/commit": {
            "post": {
                "summary": "Commit a draft",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/syllabus/lectures/{id}/update-requests": {
            "post": {
                "summary": "Request an update of a committed record",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EntityUpdateRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/syllabus/lectures/{id}/deletion-requests": {
            "post": {
                "summary": "Request deletion of a committed record",
                "tags": [
                    "Syllabus"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EntityDeletionRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/exam-marks": {
            "get": {
                "summary": "List",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "examId",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "post": {
                "summary": "Create a draft",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ExamMarkRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/exam-marks/{id}": {
            "get": {
                "summary": "Get",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "put": {
                "summary": "Edit a draft",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ExamMarkRequest"
                        }
                    }
                ]
            },
            "delete": {
                "summary": "Delete a draft",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/exam-marks/{id}/update-requests": {
            "post": {
                "summary": "Request an update of a committed record",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EntityUpdateRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/exam-marks/{id}/deletion-requests": {
            "post": {
                "summary": "Request deletion of a committed record",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    },
                    "409": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "Idempotency-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/EntityDeletionRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/fee-templates/{id}/export": {
            "get": {
                "summary": "Download a fee template as PDF",
                "tags": [
                    "Fee Templates"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/exams/{id}/commit": {
            "post": {
                "summary": "Commit every draft mark of an exam",
                "tags": [
                    "Exam Marks"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/dashboard/branch": {
            "get": {
                "summary": "Branch dashboard summary",
                "tags": [
                    "Dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "branchId",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        },
        "/api/v1/dashboard/people/{id}": {
            "get": {
                "summary": "Person month summary",
                "tags": [
                    "Dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "$ref": "#/responses/Error"
                    },
                    "401": {
                        "$ref": "#/responses/Error"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "month",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ]
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "SheetEntry": {
            "type": "object",
            "properties": {
                "personId": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "PRESENT",
                        "ABSENT",
                        "TARDY",
                        "HALF_DAY"
                    ]
                }
            }
        },
        "SaveSheetRequest": {
            "type": "object",
            "properties": {
                "branchId": {
                    "type": "string"
                },
                "courseId": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "records": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/SheetEntry"
                    }
                }
            }
        },
        "ApplyLeaveRequest": {
            "type": "object",
            "properties": {
                "startDate": {
                    "type": "string"
                },
                "endDate": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "ReviewRequest": {
            "type": "object",
            "properties": {
                "decision": {
                    "type": "string",
                    "enum": [
                        "APPROVED",
                        "REJECTED"
                    ]
                },
                "note": {
                    "type": "string"
                }
            }
        },
        "SubmitChangeRequest": {
            "type": "object",
            "properties": {
                "entityType": {
                    "type": "string",
                    "enum": [
                        "FEE_TEMPLATE",
                        "SYLLABUS_LECTURE",
                        "EXAM_MARK",
                        "ATTENDANCE"
                    ]
                },
                "requestType": {
                    "type": "string",
                    "enum": [
                        "UPDATE",
                        "DELETE"
                    ]
                },
                "targetEntityId": {
                    "type": "string"
                },
                "newData": {
                    "type": "object"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "EntityUpdateRequest": {
            "type": "object",
            "properties": {
                "newData": {
                    "type": "object"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "EntityDeletionRequest": {
            "type": "object",
            "properties": {
                "reason": {
                    "type": "string"
                }
            }
        },
        "FeeComponent": {
            "type": "object",
            "properties": {
                "component": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                }
            }
        },
        "MonthlyFee": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string"
                },
                "breakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/FeeComponent"
                    }
                }
            }
        },
        "FeeTemplateRequest": {
            "type": "object",
            "properties": {
                "branchId": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "gradeLevel": {
                    "type": "integer"
                },
                "monthlyBreakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/MonthlyFee"
                    }
                }
            }
        },
        "SyllabusLectureRequest": {
            "type": "object",
            "properties": {
                "branchId": {
                    "type": "string"
                },
                "courseId": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "topics": {
                    "type": "string"
                },
                "scheduledDate": {
                    "type": "string"
                }
            }
        },
        "ExamMarkRequest": {
            "type": "object",
            "properties": {
                "branchId": {
                    "type": "string"
                },
                "examId": {
                    "type": "string"
                },
                "courseId": {
                    "type": "string"
                },
                "studentId": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                },
                "maxScore": {
                    "type": "number"
                }
            }
        }
    },
    "responses": {
        "Error": {
            "description": "Error envelope",
            "schema": {
                "$ref": "#/definitions/Envelope"
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
