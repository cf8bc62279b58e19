// Package docs registers the SyncBoard OpenAPI document with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/healthz": {
            "get": {"tags": ["Health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/api/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "List the projects of the active organization", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Create a project in the active organization", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}}}
        },
        "/api/projects/{projectId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Get a project with its sprints", "parameters": [{"type": "string", "name": "projectId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Delete a project with its sprints and issues", "parameters": [{"type": "string", "name": "projectId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}}}}
        },
        "/api/projects/{projectId}/metrics": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Issue counts per status and completion percentage", "parameters": [{"type": "string", "name": "projectId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/projects/{projectId}/sprints": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Sprints"], "summary": "Create a sprint", "parameters": [{"type": "string", "name": "projectId", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/projects/{projectId}/issues": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Issues"], "summary": "Create an issue at the bottom of its status column", "parameters": [{"type": "string", "name": "projectId", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/sprints": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Sprints"], "summary": "List the sprints of a project", "parameters": [{"type": "string", "name": "projectId", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Sprints"], "summary": "Delete a sprint, keeping its issues in the project", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}}}}
        },
        "/api/sprints/{sprintId}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Sprints"], "summary": "Move a sprint along its lifecycle", "parameters": [{"type": "string", "name": "sprintId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/sprints/{sprintId}/issues": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Issues"], "summary": "List the issues of a sprint", "parameters": [{"type": "string", "name": "sprintId", "in": "path", "required": true}, {"type": "string", "name": "search", "in": "query"}, {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "assignee", "in": "query"}, {"type": "string", "name": "priority", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/sprints/{sprintId}/board/move": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Board"], "summary": "Apply a drag and drop move to the sprint board", "parameters": [{"type": "string", "name": "sprintId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        },
        "/api/issues/order": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Issues"], "summary": "Persist a batch of issue orders atomically", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}}}}
        },
        "/api/issues/{issueId}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Issues"], "summary": "Update the provided fields of an issue", "parameters": [{"type": "string", "name": "issueId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Issues"], "summary": "Delete an issue", "parameters": [{"type": "string", "name": "issueId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}}}}
        },
        "/api/organizations/{org}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Organizations"], "summary": "Get an organization the caller belongs to", "parameters": [{"type": "string", "name": "org", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/organizations/{org}/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Organizations"], "summary": "List the local users of the organization's members", "parameters": [{"type": "string", "name": "org", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/me/issues": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Issues the caller reports or is assigned to", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "handler.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.SuccessResponse": {"type": "object", "properties": {"success": {"type": "boolean"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "SyncBoard API",
	Description:      "Multi-tenant project and issue tracker with sprint kanban boards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
