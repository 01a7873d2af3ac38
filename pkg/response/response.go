package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/outcome"
)

// TokenResponse 注册/登录成功的载荷
type TokenResponse struct {
	Token string `json:"Token"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201，附带 Location
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest 纯文本原因
func BadRequest(c *gin.Context, reason string) {
	c.String(http.StatusBadRequest, reason)
}

func Unauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, outcome.Notification{Code: outcome.CodeUnauthorized, Description: reason})
}

// NotFound 单条通知
func NotFound(c *gin.Context, description string) {
	c.JSON(http.StatusNotFound, outcome.Notification{Code: outcome.CodeNotFound, Description: description})
}

// Unprocessable 422 + 通知列表
func Unprocessable(c *gin.Context, o outcome.Outcome) {
	c.JSON(http.StatusUnprocessableEntity, o.ToErrors())
}

// Failure 把失败的 Outcome 映射为状态码：凭据错误 401，其余 422
func Failure(c *gin.Context, o outcome.Outcome) {
	if o.Has(outcome.CodeInternal) {
		logger.Warn("workflow failed", zap.String("path", c.FullPath()), zap.Any("notifications", o.Notifications()))
	}
	if o.Has(outcome.CodeUnauthorized) {
		c.JSON(http.StatusUnauthorized, o.ToErrors())
		return
	}
	Unprocessable(c, o)
}

// InternalError 500，只暴露错误文本
func InternalError(c *gin.Context, o outcome.Outcome) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Any("notifications", o.Notifications()))
	c.JSON(http.StatusInternalServerError, o.ToErrors())
}
