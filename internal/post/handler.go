package post

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/portal-management/internal/approval"
	"github.com/frahmantamala/portal-management/internal/auth"
	"github.com/frahmantamala/portal-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(caller approval.Caller, dto CreatePostDTO) (*Post, error)
	GetByID(caller approval.Caller, id int64, deptAccess *int64) (*Post, error)
	List(caller approval.Caller, filters approval.ListFilters) ([]*Post, approval.Pagination, error)
	Update(caller approval.Caller, id int64, dto UpdatePostDTO) (*Post, error)
	Delete(caller approval.Caller, id int64) error
	Review(caller approval.Caller, id int64, approved bool) (*Post, error)
	Resubmit(caller approval.Caller, id int64) (*Post, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

type ListResponse struct {
	Posts      []*Post             `json:"posts"`
	Pagination approval.Pagination `json:"pagination"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePost: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(user.Caller(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	found, err := h.Service.GetByID(user.Caller(), id, queryInt64(r, "department_access"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filters, err := parseListFilters(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, pagination, err := h.Service.List(user.Caller(), filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Posts: posts, Pagination: pagination})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	var dto UpdatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(user.Caller(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	if err := h.Service.Delete(user.Caller(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReviewPost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	var dto ReviewPostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	reviewed, err := h.Service.Review(user.Caller(), id, *dto.Approved)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ReviewPost: decision applied",
		"post_id", id,
		"reviewer_id", user.ID,
		"status", reviewed.Status)

	h.WriteJSON(w, http.StatusOK, reviewed)
}

func (h *Handler) ResubmitPost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	resubmitted, err := h.Service.Resubmit(user.Caller(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resubmitted)
}

func (h *Handler) pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseListFilters maps the listing query string onto the shared filter
// struct used by the approval predicate builder.
func parseListFilters(r *http.Request) (approval.ListFilters, error) {
	q := r.URL.Query()

	filters := approval.ListFilters{
		Search:            q.Get("search"),
		DepartmentID:      queryInt64(r, "department_id"),
		DepartmentAccess:  queryInt64(r, "department_access"),
		IncludeAdminItems: q.Get("include_admin_posts") == "true",
	}

	if raw := q.Get("is_public"); raw != "" {
		val := raw == "true"
		filters.IsPublic = &val
	}

	if raw := q.Get("status"); raw != "" {
		status, err := approval.ParseStatus(raw)
		if err != nil {
			return approval.ListFilters{}, err
		}
		filters.Status = &status
	}

	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.Page.Page = v
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.Page.Limit = v
		}
	}

	return filters, nil
}

func queryInt64(r *http.Request, key string) *int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
