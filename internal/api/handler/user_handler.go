package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gin-blog/internal/validation"
	"github.com/d60-Lab/gin-blog/pkg/outcome"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// Register 注册新用户
// @Summary 注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.TokenResponse
// @Failure 422 {object} outcome.Errors
// @Router /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, outcome.Fail(outcome.CodeBadRequest, err.Error()))
		return
	}
	if o := validation.Validate(req); !o.IsValid() {
		response.Unprocessable(c, o)
		return
	}

	res := h.authService.Register(c.Request.Context(), req.toInput())
	token, ok := res.Value()
	if !ok {
		response.Unprocessable(c, res.Outcome())
		return
	}
	response.Success(c, response.TokenResponse{Token: token})
}

// Login 登录
// @Summary 登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} outcome.Errors
// @Failure 422 {object} outcome.Errors
// @Router /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, outcome.Fail(outcome.CodeBadRequest, err.Error()))
		return
	}
	if o := validation.Validate(req); !o.IsValid() {
		response.Unprocessable(c, o)
		return
	}

	res := h.authService.Login(c.Request.Context(), req.toInput())
	token, ok := res.Value()
	if !ok {
		response.Failure(c, res.Outcome())
		return
	}
	response.Success(c, response.TokenResponse{Token: token})
}
