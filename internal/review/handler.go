package review

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
	AddPostComment(caller approval.Caller, postID int64, dto CreateCommentDTO) (*Comment, error)
	AddDocumentComment(caller approval.Caller, documentID int64, dto CreateCommentDTO) (*Comment, error)
	ListPostComments(caller approval.Caller, postID int64) ([]*Comment, error)
	ListDocumentComments(caller approval.Caller, documentID int64) ([]*Comment, error)
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

type ListCommentsResponse struct {
	Comments []*Comment `json:"comments"`
}

func (h *Handler) AddPostComment(w http.ResponseWriter, r *http.Request) {
	h.addComment(w, r, h.Service.AddPostComment)
}

func (h *Handler) AddDocumentComment(w http.ResponseWriter, r *http.Request) {
	h.addComment(w, r, h.Service.AddDocumentComment)
}

func (h *Handler) ListPostComments(w http.ResponseWriter, r *http.Request) {
	h.listComments(w, r, h.Service.ListPostComments)
}

func (h *Handler) ListDocumentComments(w http.ResponseWriter, r *http.Request) {
	h.listComments(w, r, h.Service.ListDocumentComments)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request, add func(approval.Caller, int64, CreateCommentDTO) (*Comment, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := add(user.Caller(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request, list func(approval.Caller, int64) ([]*Comment, error)) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	comments, err := list(user.Caller(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListCommentsResponse{Comments: comments})
}
