package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterDocs registers minimal Swagger/OpenAPI endpoints for the posts API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterDocs(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>post-service — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "post-service", "version": "v0.1.0" },
  "paths": {
    "/posts": {
      "post": {
        "summary": "Create a post",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title","body","tags"],"properties":{"title":{"type":"string"},"body":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "201": { "description": "created post" }, "400": { "description": "invalid payload" } }
      },
      "get": {
        "summary": "List posts, newest first, 10 per page",
        "parameters": [ { "name": "page", "in": "query", "schema": {"type":"integer","minimum":1} } ],
        "responses": { "200": { "description": "page of posts; Last-Page header holds the page count" }, "400": { "description": "invalid page" } }
      }
    },
    "/posts/{id}": {
      "get": { "summary": "Read a post", "responses": { "200": { "description": "post" }, "400": { "description": "malformed id" }, "404": { "description": "no such post" } } },
      "patch": {
        "summary": "Merge-update a post; omitted fields keep their values",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string"},"body":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "200": { "description": "updated post" }, "400": { "description": "invalid id or payload" }, "404": { "description": "no such post" } }
      },
      "delete": { "summary": "Delete a post", "responses": { "204": { "description": "deleted" }, "400": { "description": "malformed id" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
