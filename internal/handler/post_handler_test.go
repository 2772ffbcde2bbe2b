package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"go.uber.org/zap"
)

// fakePostService errors on everything with a configurable error; GetAll
// returns the canned feed.
type fakePostService struct {
	posts []*domain.Post
	err   error
}

func (f *fakePostService) GetAll(ctx context.Context, senderID string) ([]*domain.Post, error) {
	return f.posts, f.err
}

func (f *fakePostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return nil, f.err
}

func (f *fakePostService) Create(ctx context.Context, senderID string, req *dto.CreatePostRequest, images []storage.Upload) (*domain.Post, error) {
	return nil, f.err
}

func (f *fakePostService) Update(ctx context.Context, id, callerID string, req *dto.UpdatePostRequest) (*domain.Post, error) {
	return nil, f.err
}

func (f *fakePostService) Delete(ctx context.Context, id, callerID string) error {
	return f.err
}

func (f *fakePostService) ToggleLike(ctx context.Context, id, callerID string) (*domain.Post, error) {
	return nil, f.err
}

func newPostRouter(svc *fakePostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostHandler(svc, zap.NewNop())

	router := gin.New()
	router.GET("/posts", h.GetAll)
	router.GET("/posts/:id", h.GetByID)
	return router
}

func TestGetPost_NotFoundLiteral(t *testing.T) {
	router := newPostRouter(&fakePostService{err: apperr.NotFound("Post not found")})

	req := httptest.NewRequest(http.MethodGet, "/posts/64ffffffffffffffffffffff", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Post not found", errResp.Message)
}

func TestGetPosts_UnclassifiedErrorHidesDetail(t *testing.T) {
	router := newPostRouter(&fakePostService{err: context.DeadlineExceeded})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server Error", w.Body.String())
}

func TestGetPosts_Feed(t *testing.T) {
	feed := []*domain.Post{{Content: "hello", LikesCount: 2}}
	router := newPostRouter(&fakePostService{posts: feed})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []*domain.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Content)
	assert.Equal(t, 2, got[0].LikesCount)
}
