// internal/community/handlers.go

package community

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/rikacare/rika-backend/internal/common/utils"
)

const maxUploadMemory = 10 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetFeed handles GET /api/v1/community/feed?limit=
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	posts, err := h.service.GetFeed(r.Context(), userID, utils.QueryInt(r, "limit", DefaultFeedLimit))
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, posts, http.StatusOK)
}

// CreatePost handles POST /api/v1/community/post with either a JSON body or
// a multipart form carrying "images" files.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			utils.ErrorResponse(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		req.Content = r.FormValue("content")
		if snap := r.FormValue("routineSnapshot"); snap != "" {
			if !json.Valid([]byte(snap)) {
				utils.ErrorResponse(w, "routineSnapshot must be valid JSON", http.StatusBadRequest)
				return
			}
			req.RoutineSnapshot = json.RawMessage(snap)
		}

		files := r.MultipartForm.File["images"]
		if len(files) > MaxImages {
			utils.ErrorResponse(w, "A post can have at most 5 images", http.StatusBadRequest)
			return
		}
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				utils.ErrorResponse(w, "Failed to read image", http.StatusBadRequest)
				return
			}
			url, err := h.service.UploadImage(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
			f.Close()
			if err != nil {
				utils.ErrorFromErr(w, err)
				return
			}
			req.Images = append(req.Images, url)
		}
	} else if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, post, http.StatusCreated)
}

type likeRequest struct {
	PostID int64 `json:"postId"`
}

// ToggleLike handles POST /api/v1/community/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req likeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	res, err := h.service.ToggleLike(r.Context(), userID, req.PostID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, res, http.StatusOK)
}

// ToggleFollow handles POST /api/v1/users/{id}/follow
func (h *Handler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	targetID, err := utils.PathInt64(r, "id")
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	res, err := h.service.ToggleFollow(r.Context(), userID, targetID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, res, http.StatusOK)
}

// ListFollowers handles GET /api/v1/users/{id}/followers
func (h *Handler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	targetID, err := utils.PathInt64(r, "id")
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}

	res, err := h.service.ListFollowers(r.Context(), targetID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, res, http.StatusOK)
}

func (h *Handler) InfluencerStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := h.service.InfluencerStatus(r.Context(), userID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessResponse(w, res, http.StatusOK)
}

func (h *Handler) ApplyInfluencer(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	st, err := h.service.ApplyInfluencer(r.Context(), userID)
	if err != nil {
		utils.ErrorFromErr(w, err)
		return
	}
	utils.SuccessMessageResponse(w, "Application submitted", st, http.StatusOK)
}

func RegisterRoutes(api *mux.Router, handler *Handler) {
	api.HandleFunc("/community/feed", handler.GetFeed).Methods(http.MethodGet)
	api.HandleFunc("/community/post", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/community/like", handler.ToggleLike).Methods(http.MethodPost)

	api.HandleFunc("/users/{id:[0-9]+}/follow", handler.ToggleFollow).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/followers", handler.ListFollowers).Methods(http.MethodGet)

	api.HandleFunc("/influencer/status", handler.InfluencerStatus).Methods(http.MethodGet)
	api.HandleFunc("/influencer/apply", handler.ApplyInfluencer).Methods(http.MethodPost)
}
