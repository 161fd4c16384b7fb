// Package docs registers the OpenAPI document served by gin-swagger.
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
        "/health": {
            "get": {
                "summary": "Health check",
                "tags": ["system"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register/student": {
            "post": {
                "summary": "Register a student",
                "tags": ["auth"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register/company": {
            "post": {
                "summary": "Register a company",
                "tags": ["auth"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/login": {
            "post": {
                "summary": "Log in",
                "tags": ["auth"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/me": {
            "get": {
                "summary": "Current account",
                "tags": ["auth"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/stats": {
            "get": {
                "summary": "Platform statistics",
                "tags": ["admin"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/companies/pending": {
            "get": {
                "summary": "List pending companies",
                "tags": ["admin"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/companies": {
            "get": {
                "summary": "List companies by status",
                "tags": ["admin"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/companies/approve/{id}": {
            "put": {
                "summary": "Approve a company",
                "tags": ["admin"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/companies/reject/{id}": {
            "put": {
                "summary": "Reject a company",
                "tags": ["admin"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/internships": {
            "get": {
                "summary": "List open internships",
                "tags": ["internships"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Post an internship",
                "tags": ["internships"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/internships/mine": {
            "get": {
                "summary": "List the calling company's internships",
                "tags": ["internships"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/internships/{id}": {
            "get": {
                "summary": "Get an internship",
                "tags": ["internships"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "summary": "Update an internship",
                "tags": ["internships"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/internships/{id}/close": {
            "put": {
                "summary": "Close an internship",
                "tags": ["internships"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/internships/{id}/applications": {
            "get": {
                "summary": "List applications for an internship",
                "tags": ["applications"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Apply to an internship",
                "tags": ["applications"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/mine": {
            "get": {
                "summary": "List my applications",
                "tags": ["applications"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/{id}": {
            "get": {
                "summary": "Get an application",
                "tags": ["applications"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/applications/{id}/status": {
            "put": {
                "summary": "Update application status",
                "tags": ["applications"],
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SCM Career Bridge API",
	Description:      "Internship matching between SCM students and partner companies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
