package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openpress/post-service/internal/post"
	"github.com/openpress/post-service/internal/post/service"
	"github.com/openpress/post-service/pkg/logger"
	"github.com/openpress/post-service/pkg/metrics"
)

// RegisterPostRoutes mounts the posts API. Each route is a single
// request/response cycle: validate or guard, call the service, translate
// the outcome into a status code.
func RegisterPostRoutes(r *gin.Engine, svc service.Service) {
	r.POST("/posts", func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			respondError(c, "create", &post.ValidationError{Fields: []post.FieldError{{Field: "payload", Reason: "unreadable body"}}})
			return
		}
		created, err := svc.Create(c.Request.Context(), body)
		if err != nil {
			respondError(c, "create", err)
			return
		}
		metrics.Requests.WithLabelValues("create", "201").Inc()
		c.JSON(http.StatusCreated, created)
	})

	r.GET("/posts", func(c *gin.Context) {
		posts, lastPage, err := svc.List(c.Request.Context(), c.Query("page"))
		if err != nil {
			respondError(c, "list", err)
			return
		}
		metrics.Requests.WithLabelValues("list", "200").Inc()
		c.Header("Last-Page", strconv.FormatInt(lastPage, 10))
		c.JSON(http.StatusOK, posts)
	})

	r.GET("/posts/:id", func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, "read", err)
			return
		}
		metrics.Requests.WithLabelValues("read", "200").Inc()
		c.JSON(http.StatusOK, p)
	})

	r.PATCH("/posts/:id", func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			respondError(c, "update", &post.ValidationError{Fields: []post.FieldError{{Field: "payload", Reason: "unreadable body"}}})
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			respondError(c, "update", err)
			return
		}
		metrics.Requests.WithLabelValues("update", "200").Inc()
		c.JSON(http.StatusOK, updated)
	})

	r.DELETE("/posts/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, "remove", err)
			return
		}
		metrics.Requests.WithLabelValues("remove", "204").Inc()
		c.Status(http.StatusNoContent)
	})
}

// respondError maps the domain error taxonomy onto status codes:
// validation and guard failures are the client's fault, a missing record
// is 404, anything else is a store failure surfaced with its cause.
func respondError(c *gin.Context, op string, err error) {
	var verr *post.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.Requests.WithLabelValues(op, "400").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, post.ErrInvalidID), errors.Is(err, post.ErrInvalidPage):
		metrics.Requests.WithLabelValues(op, "400").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, post.ErrNotFound):
		metrics.Requests.WithLabelValues(op, "404").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Errorf("%s: store failure: %v", op, err)
		metrics.Requests.WithLabelValues(op, "500").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failure: " + err.Error()})
	}
}
