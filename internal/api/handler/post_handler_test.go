package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

var author = &domain.User{ID: "user_1", Email: "ana@school.edu", Approved: true}

func TestPostHandler_List_PassesFilter(t *testing.T) {
	e := newEcho()
	var got ports.ListPostsFilter
	stub := &stubPostService{
		listFn: func(filter ports.ListPostsFilter) []domain.Post {
			got = filter
			return []domain.Post{{ID: "post_1", Text: "hi", CreatedAt: time.Unix(0, 0)}}
		},
	}
	handler := NewPostHandler(stub, &stubImageService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/posts?search=news&sort=popular&offset=2&limit=5", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := ports.ListPostsFilter{Search: "news", Sort: ports.SortPopular, Offset: 2, Limit: 5}
	if got != want {
		t.Fatalf("filter = %+v, want %+v", got, want)
	}

	var resp struct {
		Items []map[string]any `json:"items"`
		Count int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Items[0]["id"] != "post_1" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if likes, ok := resp.Items[0]["likes"].([]any); !ok || len(likes) != 0 {
		t.Fatalf("expected empty likes array, got %v", resp.Items[0]["likes"])
	}
}

func TestPostHandler_List_RejectsUnknownSort(t *testing.T) {
	e := newEcho()
	handler := NewPostHandler(&stubPostService{}, &stubImageService{})
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/posts?sort=oldest", nil), httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := handler.List(c); !errors.As(err, &ve) || ve.Field != "sort" {
		t.Fatalf("expected sort ValidationError, got %v", err)
	}
}

func TestPostHandler_Create_JSON(t *testing.T) {
	e := newEcho()
	stub := &stubPostService{
		createFn: func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
			if in.Text != "Hello" || in.AuthorID != "user_1" || in.Image != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			if len(in.Tags) != 1 || in.Tags[0] != "news" {
				t.Fatalf("unexpected tags: %v", in.Tags)
			}
			return &domain.Post{ID: "post_9", Text: in.Text, AuthorID: in.AuthorID, Tags: in.Tags}, nil
		},
	}
	handler := NewPostHandler(stub, &stubImageService{})

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"text":"Hello","tags":["news"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userKey, author)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"post_9"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPostHandler_Create_MultipartImage(t *testing.T) {
	e := newEcho()
	images := &stubImageService{payload: "data:image/jpeg;base64,AAAA"}
	stub := &stubPostService{
		createFn: func(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
			if in.Image == nil || *in.Image != images.payload {
				t.Fatalf("expected processed image, got %v", in.Image)
			}
			return &domain.Post{ID: "post_2", Text: in.Text, Image: in.Image}, nil
		},
	}
	handler := NewPostHandler(stub, images)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("text", "With photo"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("image", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/posts", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userKey, author)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if images.size != int64(len("png-bytes")) {
		t.Fatalf("expected declared size %d, got %d", len("png-bytes"), images.size)
	}
}

func TestPostHandler_Create_ImageRejected(t *testing.T) {
	e := newEcho()
	images := &stubImageService{err: &domain.ImageError{Reason: "image must be 1MB or smaller", TooLarge: true}}
	stub := &stubPostService{
		createFn: func(context.Context, ports.CreatePostInput) (*domain.Post, error) {
			t.Fatalf("post must not be created")
			return nil, nil
		},
	}
	handler := NewPostHandler(stub, images)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("text", "Too big")
	fw, _ := mw.CreateFormFile("image", "big.png")
	_, _ = fw.Write([]byte("x"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/posts", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(userKey, author)

	if err := handler.Create(c); !errors.Is(err, domain.ErrImage) {
		t.Fatalf("expected image error, got %v", err)
	}
}

func TestPostHandler_Create_RequiresUser(t *testing.T) {
	e := newEcho()
	handler := NewPostHandler(&stubPostService{}, &stubImageService{})

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"text":"Hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var he *echo.HTTPError
	if err := handler.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPostHandler_ToggleLike(t *testing.T) {
	e := newEcho()
	var gotPost, gotUser string
	stub := &stubPostService{
		likeFn: func(ctx context.Context, postID, userID string) error {
			gotPost, gotUser = postID, userID
			return nil
		},
	}
	handler := NewPostHandler(stub, &stubImageService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("post_1")
	c.Set(userKey, author)

	if err := handler.ToggleLike(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotPost != "post_1" || gotUser != "user_1" {
		t.Fatalf("unexpected args: %s %s", gotPost, gotUser)
	}
}

func TestPostHandler_AddComment_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubPostService{
		commentFn: func(ctx context.Context, postID, userID, text string) (*domain.Comment, error) {
			return nil, &domain.NotFoundError{Kind: domain.KindPost, ID: postID}
		},
	}
	handler := NewPostHandler(stub, &stubImageService{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"Nice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("post_x")
	c.Set(userKey, author)

	if err := handler.AddComment(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostHandler_AddComment_Created(t *testing.T) {
	e := newEcho()
	stub := &stubPostService{
		commentFn: func(ctx context.Context, postID, userID, text string) (*domain.Comment, error) {
			return &domain.Comment{ID: "comment_1", UserID: userID, Text: text}, nil
		},
	}
	handler := NewPostHandler(stub, &stubImageService{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"Nice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("post_1")
	c.Set(userKey, author)

	if err := handler.AddComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp commentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "comment_1" || resp.UserID != "user_1" || resp.Text != "Nice" {
		t.Fatalf("unexpected comment: %+v", resp)
	}
}
