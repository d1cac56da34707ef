package movie

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	model "github.com/zhouzirui/movies/backend/internal/model/movie"
	movieService "github.com/zhouzirui/movies/backend/internal/service/movie"
	"github.com/zhouzirui/movies/backend/pkg/utils"
)

const (
	maxBodyBytes = 1 << 20

	msgNotFound = "Movie not found"
	msgDeleted  = "Movie deleted successfully"
)

// Handler 电影资源的HTTP处理器
type Handler struct {
	movies *movieService.Service
	logger *zap.Logger
}

// New 创建电影处理器
func New(movies *movieService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{movies: movies, logger: logger}
}

// RegisterRoutes 注册 /movies 相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

// handleList 列出电影，可按 genre 过滤
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	genre := query.Get("genre")
	if query.Has("genre") && genre == "" {
		// an explicit empty filter matches no genre
		utils.RespondJSON(w, http.StatusOK, []model.Movie{})
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.movies.List(r.Context(), genre))
}

// handleCreate 创建电影
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	created, err := h.movies.Create(r.Context(), body)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, created)
}

// handleGet 查询单个电影
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.movies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, m)
}

// handleUpdate 部分更新电影
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	updated, err := h.movies.Update(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated)
}

// handleDelete 删除电影
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.movies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondMessage(w, http.StatusOK, msgDeleted)
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		utils.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return body, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondError(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, movieService.ErrNotFound):
		utils.RespondMessage(w, http.StatusNotFound, msgNotFound)
	default:
		h.logger.Error("movie request failed", zap.Error(err))
		utils.RespondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
