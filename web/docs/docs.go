/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package docs holds the OpenAPI description of the web API, generated by
// swag from the annotations in package web.
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
            "name": "Apache-2.0"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/runs/{id}/artifacts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "List a run's artifacts",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/web.ArtifactList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/web.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/web.ErrorResponse"}}
                }
            }
        },
        "/runs": {
            "post": {
                "description": "Runs research, frame, review and solve over the submitted case study, then redirects to the run page.",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["runs"],
                "summary": "Run the pipeline",
                "parameters": [
                    {"type": "string", "description": "Case study details", "name": "case_study_details", "in": "formData"},
                    {"type": "string", "description": "Context for the case study", "name": "context", "in": "formData"},
                    {"type": "string", "description": "Generation model", "name": "model", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "400": {"description": "Unsupported model", "schema": {"type": "string"}},
                    "503": {"description": "No credentials for the model", "schema": {"type": "string"}}
                }
            }
        },
        "/runs/{id}/artifacts/{stage}/download": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["artifacts"],
                "summary": "Download an artifact",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Stage name", "name": "stage", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Artifact text", "schema": {"type": "string"}},
                    "404": {"description": "Stage unknown or artifact not produced", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "present.View": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "output": {"type": "string"},
                "persisted": {"type": "boolean"},
                "stage": {"type": "string"},
                "state": {"type": "string", "enum": ["pending", "ready"]},
                "text": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "web.ArtifactList": {
            "type": "object",
            "properties": {
                "artifacts": {"type": "array", "items": {"$ref": "#/definitions/present.View"}},
                "run_id": {"type": "string"}
            }
        },
        "web.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
	Title:            "casecrew API",
	Description:      "Runs the research, frame, review, solve pipeline over a case study.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
