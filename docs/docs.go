// Package docs 由 swag 生成的接口文档描述（swag init -g cmd/server/main.go）
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
        "/api/v1/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "注册",
                "parameters": [
                    {"description": "注册信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.TokenResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/outcome.Errors"}}
                }
            }
        },
        "/api/v1/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["用户"],
                "summary": "登录",
                "parameters": [
                    {"description": "登录信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/outcome.Errors"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/outcome.Errors"}}
                }
            }
        },
        "/api/v1/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["博文"],
                "summary": "博文列表",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.PostView"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Notification"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["博文"],
                "summary": "发布博文",
                "parameters": [
                    {"description": "博文", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.postResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/outcome.Notification"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/outcome.Errors"}}
                }
            }
        },
        "/api/v1/posts/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["博文"],
                "summary": "查询博文",
                "parameters": [{"type": "string", "description": "博文ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PostView"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Notification"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["博文"],
                "summary": "修改博文",
                "parameters": [
                    {"type": "string", "description": "博文ID", "name": "id", "in": "path", "required": true},
                    {"description": "博文", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createPostRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/outcome.Errors"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["博文"],
                "summary": "删除博文",
                "parameters": [{"type": "string", "description": "博文ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/outcome.Errors"}}
                }
            }
        },
        "/api/v1/notifications/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["通知"],
                "summary": "订阅新帖通知（SSE）",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notify.Event"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/outcome.Notification"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["系统"],
                "summary": "健康检查",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handler.registerRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.createPostRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "content": {"type": "string"}}
        },
        "handler.postResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "content": {"type": "string"}, "userId": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "service.PostView": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "content": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "notify.Event": {
            "type": "object",
            "properties": {"type": {"type": "string"}, "post_id": {"type": "string"}, "title": {"type": "string"}, "content": {"type": "string"}, "created_at": {"type": "string"}}
        },
        "outcome.Notification": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "description": {"type": "string"}}
        },
        "outcome.Errors": {
            "type": "object",
            "properties": {"type": {"type": "string"}, "notifications": {"type": "array", "items": {"$ref": "#/definitions/outcome.Notification"}}}
        },
        "response.TokenResponse": {
            "type": "object",
            "properties": {"Token": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Gin Blog API",
	Description:      "博文发布服务：注册登录、博文增删改查、新帖实时通知",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
