package notification

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/portal-management/internal/approval"
	"github.com/frahmantamala/portal-management/internal/auth"
	"github.com/frahmantamala/portal-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListForUser(caller approval.Caller) ([]*Notification, error)
	MarkRead(caller approval.Caller, id int64) (*Notification, error)
	MarkAllRead(caller approval.Caller) error
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
	Notifications []*Notification `json:"notifications"`
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notifications, err := h.Service.ListForUser(user.Caller())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Notifications: notifications})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid notification ID")
		return
	}

	updated, err := h.Service.MarkRead(user.Caller(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.MarkAllRead(user.Caller()); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
