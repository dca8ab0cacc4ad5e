package community

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"

	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/userlock"
	"github.com/rikacare/rika-backend/internal/common/utils"
	"github.com/rikacare/rika-backend/internal/profile"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*mux.Router, profile.Service) {
	t.Helper()
	profiles := profile.NewService(profile.NewMemoryRepository(), logger.Nop())
	store, err := NewImageStore(StorageConfig{LocalUploadDir: t.TempDir(), BaseURL: "http://test"})
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(NewMemoryRepository(), profiles, store, database.NopTransactor{}, userlock.New(), generousRate, logger.Nop())

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id, _ := strconv.ParseInt(req.Header.Get("X-Test-User"), 10, 64)
			next.ServeHTTP(w, req.WithContext(utils.WithUserID(req.Context(), id)))
		})
	})
	RegisterRoutes(api, NewHandler(svc))
	return r, profiles
}

func do(t *testing.T, h http.Handler, req *http.Request, user int64) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req.Header.Set("X-Test-User", strconv.FormatInt(user, 10))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestHandlersPostLikeAndFeed(t *testing.T) {
	router, profiles := newTestRouter(t)
	_ = profiles.CreateProfile(context.Background(), 1, "Amara Okafor")

	body := bytes.NewBufferString(`{"content":"Glowing today","routineSnapshot":{"type":"evening"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/community/post", body)
	req.Header.Set("Content-Type", "application/json")
	rec, env := do(t, router, req, 1)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, env.Error)
	}
	var post Post
	_ = json.Unmarshal(env.Data, &post)

	likeBody := bytes.NewBufferString(`{"postId":` + strconv.FormatInt(post.ID, 10) + `}`)
	rec, env = do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/community/like", likeBody), 1)
	if rec.Code != http.StatusOK {
		t.Fatalf("like status = %d: %s", rec.Code, env.Error)
	}

	rec, env = do(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/community/feed?limit=5", nil), 1)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed status = %d", rec.Code)
	}
	var feed []Post
	_ = json.Unmarshal(env.Data, &feed)
	if len(feed) != 1 || feed[0].LikeCount != 1 || !feed[0].UserLiked || feed[0].User.Initials != "AO" {
		t.Fatalf("feed = %+v", feed)
	}
}

func TestHandlersMultipartUpload(t *testing.T) {
	router, profiles := newTestRouter(t)
	_ = profiles.CreateProfile(context.Background(), 1, "Amara")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("content", "Before and after")
	fw, _ := mw.CreateFormFile("images", "after.jpg")
	_, _ = fw.Write([]byte("jpeg bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/community/post", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec, env := do(t, router, req, 1)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, env.Error)
	}
	var post Post
	_ = json.Unmarshal(env.Data, &post)
	if len(post.Images) != 1 {
		t.Fatalf("images = %v", post.Images)
	}
}

func TestHandlersFollowErrors(t *testing.T) {
	router, profiles := newTestRouter(t)
	_ = profiles.CreateProfile(context.Background(), 1, "Amara")

	rec, env := do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/users/1/follow", nil), 1)
	if rec.Code != http.StatusBadRequest || env.Error != "Cannot follow yourself" {
		t.Fatalf("self follow = %d %q", rec.Code, env.Error)
	}

	rec, _ = do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/users/42/follow", nil), 1)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown target = %d", rec.Code)
	}

	rec, _ = do(t, router, httptest.NewRequest(http.MethodPost, "/api/v1/influencer/apply", nil), 1)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("apply = %d", rec.Code)
	}
}
