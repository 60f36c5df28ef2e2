package notify

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/daily-word/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	notifier *StoredNotifier
}

func NewHandler(notifier *StoredNotifier) *Handler {
	return &Handler{notifier: notifier}
}

func (h *Handler) GetUnread(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	notifications, err := h.notifier.Unread(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load notifications"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"unread_count":  len(notifications),
	})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid notification id"})
		return
	}

	if err := h.notifier.MarkRead(id, userID); err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Notification not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
