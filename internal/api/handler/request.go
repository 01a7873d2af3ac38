package handler

import (
	"time"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" label:"Name" validate:"required,max=255"`
	Username string `json:"username" label:"Username" validate:"required,max=255"`
	Password string `json:"password" label:"Password" validate:"required,max=255"`
}

func (registerRequest) Subject() string { return "User" }

func (r registerRequest) toInput() service.RegisterInput {
	return service.RegisterInput{Name: r.Name, Username: r.Username, Password: r.Password}
}

type loginRequest struct {
	Username string `json:"username" label:"Username" validate:"required"`
	Password string `json:"password" label:"Password" validate:"required"`
}

func (loginRequest) Subject() string { return "User" }

func (r loginRequest) toInput() service.LoginInput {
	return service.LoginInput{Username: r.Username, Password: r.Password}
}

type createPostRequest struct {
	Title   string `json:"title" label:"Title" validate:"required,max=255"`
	Content string `json:"content" label:"Content" validate:"required"`
}

func (createPostRequest) Subject() string { return "Post" }

// userID 来自令牌
func (r createPostRequest) toInput(userID string) service.CreatePostInput {
	return service.CreatePostInput{Title: r.Title, Content: r.Content, UserID: userID}
}

type updatePostRequest struct {
	ID      string `json:"-" label:"Id" validate:"required,nonzero_uuid"`
	Title   string `json:"title" label:"Title" validate:"required,max=255"`
	Content string `json:"content" label:"Content" validate:"required"`
}

func (updatePostRequest) Subject() string { return "Post" }

func (r updatePostRequest) toInput() service.UpdatePostInput {
	return service.UpdatePostInput{ID: r.ID, Title: r.Title, Content: r.Content}
}

// postResponse 创建成功返回的完整博文
type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPostResponse(p *model.Post) postResponse {
	return postResponse{ID: p.ID, Title: p.Title, Content: p.Content, UserID: p.UserID, CreatedAt: p.CreatedAt}
}
