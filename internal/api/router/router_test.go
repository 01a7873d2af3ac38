package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	_ "github.com/d60-Lab/gin-blog/docs"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/notify"
	"github.com/d60-Lab/gin-blog/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(opts Options) *gin.Engine {
	h := handler.NewHandler(nil, nil, notify.NewHub(1), nil)
	tokens := service.NewTokenIssuer("secret", "gin-blog", time.Hour)
	return Setup(h, tokens, opts)
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetup_Swagger(t *testing.T) {
	w := serve(newEngine(Options{Swagger: true}), http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/posts")

	w = serve(newEngine(Options{}), http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetup_AuthRoutesRateLimited(t *testing.T) {
	r := newEngine(Options{AuthRPS: 0.001, AuthBurst: 1})

	// 请求体不完整，校验阶段即返回
	w := serve(r, http.MethodPost, "/api/v1/users/login", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(r, http.MethodPost, "/api/v1/users/login", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 博文接口不受限
	w = serve(r, http.MethodPost, "/api/v1/posts", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetup_RequestID(t *testing.T) {
	w := serve(newEngine(Options{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
