// Package docs registers the OpenAPI document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/elections": {
            "post": {
                "summary": "Create an election (admin)",
                "tags": [
                    "elections"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateElectionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created",
                        "schema": {
                            "$ref": "#/definitions/Election"
                        }
                    },
                    "403": {
                        "description": "insufficient_privileges",
                        "schema": {
                            "$ref": "#/definitions/Error"
                        }
                    },
                    "422": {
                        "description": "invalid_dates or invalid_date",
                        "schema": {
                            "$ref": "#/definitions/Error"
                        }
                    }
                }
            },
            "get": {
                "summary": "List elections",
                "tags": [
                    "elections"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/elections/{election_id}": {
            "get": {
                "summary": "Election summary",
                "tags": [
                    "elections"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "$ref": "#/definitions/Election"
                        }
                    },
                    "404": {
                        "description": "election_not_found",
                        "schema": {
                            "$ref": "#/definitions/Error"
                        }
                    }
                }
            }
        },
        "/v1/elections/{election_id}/phase": {
            "get": {
                "summary": "Current phase",
                "tags": [
                    "elections"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/elections/{election_id}/members": {
            "post": {
                "summary": "Join an election as candidate or voter",
                "tags": [
                    "membership"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "202": {
                        "description": "pending"
                    },
                    "404": {
                        "description": "identity_not_found or election_not_found"
                    },
                    "409": {
                        "description": "member_exists or phase error"
                    }
                }
            }
        },
        "/v1/elections/{election_id}/members/{identity}/status": {
            "post": {
                "summary": "Approve or reject a pending member (admin)",
                "tags": [
                    "membership"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "$ref": "#/parameters/electionID"
                    },
                    {
                        "in": "path",
                        "name": "identity",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "403": {
                        "description": "insufficient_privileges"
                    }
                }
            }
        },
        "/v1/elections/{election_id}/members/pending": {
            "get": {
                "summary": "Pending members of a role (admin)",
                "tags": [
                    "membership"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "$ref": "#/parameters/electionID"
                    },
                    {
                        "$ref": "#/parameters/role"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/elections/{election_id}/members/approved": {
            "get": {
                "summary": "Approved members of a role",
                "tags": [
                    "membership"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/electionID"
                    },
                    {
                        "$ref": "#/parameters/role"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/elections/{election_id}/votes": {
            "post": {
                "summary": "Cast the caller's vote",
                "tags": [
                    "voting"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "202": {
                        "description": "recorded"
                    },
                    "409": {
                        "description": "voter_already_voted or phase error"
                    }
                }
            }
        },
        "/v1/identities": {
            "post": {
                "summary": "Register the caller's profile",
                "tags": [
                    "registry"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created"
                    },
                    "409": {
                        "description": "identity_exists"
                    }
                }
            }
        },
        "/v1/access": {
            "get": {
                "summary": "Current access policy",
                "tags": [
                    "access"
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/access/admin": {
            "put": {
                "summary": "Delegate the admin role (admin)",
                "tags": [
                    "access"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/access/reports": {
            "put": {
                "summary": "Authorize the reports identity (admin)",
                "tags": [
                    "access"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/reports-source/elections/{election_id}/voters": {
            "get": {
                "summary": "Approved voters (reports identity)",
                "tags": [
                    "report-source"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/reports-source/elections/{election_id}/candidates": {
            "get": {
                "summary": "Approved candidates with votes once finished (reports identity)",
                "tags": [
                    "report-source"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/reports-source/identities/{identity}": {
            "get": {
                "summary": "Profile lookup (reports identity)",
                "tags": [
                    "report-source"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/caller"
                    },
                    {
                        "in": "path",
                        "name": "identity",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/reports/elections/{election_id}/voters": {
            "get": {
                "summary": "Voter report",
                "tags": [
                    "reports"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/reports/elections/{election_id}/participation": {
            "get": {
                "summary": "Participation report",
                "tags": [
                    "reports"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/v1/reports/elections/{election_id}/results": {
            "get": {
                "summary": "Result report",
                "tags": [
                    "reports"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/electionID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        }
    },
    "parameters": {
        "caller": {
            "in": "header",
            "name": "X-User-Id",
            "required": true,
            "type": "string",
            "description": "caller identity (hex address)"
        },
        "electionID": {
            "in": "path",
            "name": "election_id",
            "required": true,
            "type": "integer"
        },
        "role": {
            "in": "query",
            "name": "role",
            "required": true,
            "type": "string",
            "enum": [
                "candidate",
                "voter"
            ]
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "CalendarDate": {
            "type": "object",
            "properties": {
                "second": {
                    "type": "integer"
                },
                "minute": {
                    "type": "integer"
                },
                "hour": {
                    "type": "integer"
                },
                "day": {
                    "type": "integer"
                },
                "month": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "CreateElectionRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "starts_at": {
                    "$ref": "#/definitions/CalendarDate"
                },
                "ends_at": {
                    "$ref": "#/definitions/CalendarDate"
                }
            }
        },
        "Election": {
            "type": "object",
            "properties": {
                "election_id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                },
                "starts_at": {
                    "type": "string"
                },
                "ends_at": {
                    "type": "string"
                },
                "phase": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "in_progress",
                        "finished"
                    ]
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Electoral API",
	Description:      "Election authority and reporting endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
