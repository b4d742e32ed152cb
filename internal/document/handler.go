package document

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
	Create(caller approval.Caller, dto CreateDocumentDTO) (*Document, error)
	GetByID(caller approval.Caller, id int64, deptAccess *int64) (*Document, error)
	List(caller approval.Caller, filters approval.ListFilters) ([]*Document, approval.Pagination, error)
	Update(caller approval.Caller, id int64, dto UpdateDocumentDTO) (*Document, error)
	Delete(caller approval.Caller, id int64) error
	Review(caller approval.Caller, id int64, approved bool) (*Document, error)
	Resubmit(caller approval.Caller, id int64) (*Document, error)
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
	Documents  []*Document         `json:"documents"`
	Pagination approval.Pagination `json:"pagination"`
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDocumentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateDocument: invalid request body", "error", err)
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

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	found, err := h.Service.GetByID(user.Caller(), id, queryInt64(r, "department_access"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
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

	documents, pagination, err := h.Service.List(user.Caller(), filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Documents: documents, Pagination: pagination})
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	var dto UpdateDocumentDTO
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

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	if err := h.Service.Delete(user.Caller(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReviewDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	var dto ReviewDocumentDTO
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

	h.Logger.Info("ReviewDocument: decision applied",
		"document_id", id,
		"reviewer_id", user.ID,
		"status", reviewed.Status)

	h.WriteJSON(w, http.StatusOK, reviewed)
}

func (h *Handler) ResubmitDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document ID")
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

func parseListFilters(r *http.Request) (approval.ListFilters, error) {
	q := r.URL.Query()

	filters := approval.ListFilters{
		Search:            q.Get("search"),
		DepartmentID:      queryInt64(r, "department_id"),
		DepartmentAccess:  queryInt64(r, "department_access"),
		IncludeAdminItems: q.Get("include_admin_documents") == "true",
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
