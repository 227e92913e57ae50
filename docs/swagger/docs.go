// Package swagger registers the OpenAPI document served under /swagger.
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/accounts": {
            "get": {
                "tags": ["accounts"],
                "summary": "List accounts",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Accounts with formatted balances"}}
            },
            "post": {
                "tags": ["accounts"],
                "summary": "Create account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created account"},
                    "400": {"description": "Invalid name or balance"}
                }
            }
        },
        "/accounts/{id}": {
            "get": {
                "tags": ["accounts"],
                "summary": "Get account",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Account"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/budget/{type}": {
            "get": {
                "tags": ["budget"],
                "summary": "Get budget context",
                "parameters": [{"type": "string", "enum": ["report", "rollover"], "name": "type", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Budget context"},
                    "400": {"description": "Unknown budget type"}
                }
            }
        },
        "/budget/{type}/summary": {
            "post": {
                "tags": ["budget"],
                "summary": "Toggle summary collapse",
                "parameters": [{"type": "string", "name": "type", "in": "path", "required": true}],
                "responses": {"200": {"description": "Budget context"}}
            }
        },
        "/budget/{type}/actions": {
            "post": {
                "tags": ["budget"],
                "summary": "Run a budget action",
                "parameters": [{"type": "string", "name": "type", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Updated month"},
                    "400": {"description": "Invalid action"}
                }
            }
        },
        "/budget/{type}/{month}": {
            "get": {
                "tags": ["budget"],
                "summary": "Get budgeted amounts for a month",
                "parameters": [
                    {"type": "string", "name": "type", "in": "path", "required": true},
                    {"type": "string", "name": "month", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Formatted amounts by category"}}
            }
        },
        "/preferences/number-format": {
            "get": {
                "tags": ["preferences"],
                "summary": "Get number format",
                "responses": {"200": {"description": "Current format and options"}}
            },
            "put": {
                "tags": ["preferences"],
                "summary": "Set number format",
                "consumes": ["application/json"],
                "responses": {
                    "200": {"description": "Updated format"},
                    "400": {"description": "Unknown format"}
                }
            }
        },
        "/transactions": {
            "get": {
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [{"type": "string", "name": "account", "in": "query", "required": true}],
                "responses": {"200": {"description": "Transactions with formatted amounts"}}
            }
        },
        "/transactions/import": {
            "post": {
                "tags": ["transactions"],
                "summary": "Plan or apply a CSV import",
                "consumes": ["application/json"],
                "responses": {
                    "200": {"description": "Import plan and executed count"},
                    "400": {"description": "Invalid request"},
                    "404": {"description": "Import file not found"}
                }
            }
        },
        "/integrity": {
            "get": {
                "tags": ["integrity"],
                "summary": "Run all integrity checks",
                "responses": {"200": {"description": "Combined report"}}
            }
        },
        "/integrity/structure": {
            "get": {
                "tags": ["integrity"],
                "summary": "Check bucket folders",
                "parameters": [{"type": "boolean", "name": "fix", "in": "query"}],
                "responses": {"200": {"description": "Missing or fixed folders"}}
            }
        },
        "/integrity/imports": {
            "get": {
                "tags": ["integrity"],
                "summary": "List import files without a report",
                "responses": {"200": {"description": "Import files and pending ones"}}
            }
        },
        "/integrity/schema": {
            "get": {
                "tags": ["integrity"],
                "summary": "Compare the database schema with the models",
                "responses": {"200": {"description": "Per-table report"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "budget-core API",
	Description:      "Accounts, budgets, number formatting and transaction imports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
