package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/internal/api/middleware"
	"github.com/d60-Lab/gin-blog/internal/validation"
	"github.com/d60-Lab/gin-blog/pkg/outcome"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

const (
	msgInvalidPostID    = "Post Id Invalid"
	msgPostNotFound     = "Post Not Found"
	msgPostListNotFound = "Post List Not Found"
	msgMissingUserID    = "User ID claim not found in token."
)

// parsePostID 空 ID 或非法 ID 不进入工作流
func parsePostID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		response.BadRequest(c, msgInvalidPostID)
		return "", false
	}
	return id.String(), true
}

// CreatePost 发布博文
// @Summary 发布博文
// @Tags 博文
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPostRequest true "博文"
// @Success 201 {object} postResponse
// @Failure 401 {object} outcome.Notification
// @Failure 422 {object} outcome.Errors
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, msgMissingUserID)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, outcome.Fail(outcome.CodeBadRequest, err.Error()))
		return
	}
	if o := validation.Validate(req); !o.IsValid() {
		response.Unprocessable(c, o)
		return
	}

	res := h.postService.Create(c.Request.Context(), req.toInput(userID))
	post, ok := res.Value()
	if !ok {
		response.Failure(c, res.Outcome())
		return
	}
	response.Created(c, "/api/v1/posts/"+post.ID, toPostResponse(post))
}

// UpdatePost 修改博文标题与正文
// @Summary 修改博文
// @Tags 博文
// @Accept json
// @Security BearerAuth
// @Param id path string true "博文ID"
// @Param request body createPostRequest true "博文"
// @Success 204
// @Failure 422 {object} outcome.Errors
// @Router /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		response.Unauthorized(c, msgMissingUserID)
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, outcome.Fail(outcome.CodeBadRequest, err.Error()))
		return
	}
	req.ID = c.Param("id")
	if o := validation.Validate(req); !o.IsValid() {
		response.Unprocessable(c, o)
		return
	}
	// 与 GET/DELETE 一致，按规范形式查库
	req.ID = uuid.MustParse(req.ID).String()

	res := h.postService.Update(c.Request.Context(), req.toInput())
	if !res.IsValid() {
		response.Failure(c, res.Outcome())
		return
	}
	response.NoContent(c)
}

// DeletePost 删除博文
// @Summary 删除博文
// @Tags 博文
// @Security BearerAuth
// @Param id path string true "博文ID"
// @Success 204
// @Failure 400 {string} string
// @Failure 422 {object} outcome.Errors
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		response.Unauthorized(c, msgMissingUserID)
		return
	}
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	if o := h.postService.Delete(c.Request.Context(), id); !o.IsValid() {
		response.Failure(c, o)
		return
	}
	response.NoContent(c)
}

// GetPost 查询单篇博文
// @Summary 查询博文
// @Tags 博文
// @Produce json
// @Security BearerAuth
// @Param id path string true "博文ID"
// @Success 200 {object} service.PostView
// @Failure 400 {string} string
// @Failure 404 {object} outcome.Notification
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		response.Unauthorized(c, msgMissingUserID)
		return
	}
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	res := h.postService.GetByID(c.Request.Context(), id)
	view, ok := res.Value()
	if !ok {
		response.InternalError(c, res.Outcome())
		return
	}
	if view == nil {
		response.NotFound(c, msgPostNotFound)
		return
	}
	response.Success(c, view)
}

// ListPosts 查询全部博文（按创建时间升序）
// @Summary 博文列表
// @Tags 博文
// @Produce json
// @Success 200 {array} service.PostView
// @Failure 404 {object} outcome.Notification
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	res := h.postService.GetAll(c.Request.Context())
	views, ok := res.Value()
	if !ok {
		response.InternalError(c, res.Outcome())
		return
	}
	if len(views) == 0 {
		response.NotFound(c, msgPostListNotFound)
		return
	}
	response.Success(c, views)
}
