package progress

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daily-word/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Read surfaces ───────────────────────────────────────

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	state, err := h.service.State(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load progress"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.Today(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load today's word"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Commands ────────────────────────────────────────────

func (h *Handler) Rotate(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, Command{Type: CmdRotateIfNeeded})
}

func (h *Handler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	var req models.MarkUsedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	h.dispatch(w, r, Command{Type: CmdMarkUsed, Sentence: req.Sentence})
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req models.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	h.dispatch(w, r, Command{Type: CmdToggleFavorite, WordIndex: req.WordIndex})
}

func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	h.dispatch(w, r, Command{Type: CmdAddNote, WordIndex: req.WordIndex, Note: req.Note})
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	h.dispatch(w, r, Command{Type: CmdReviewWord, WordIndex: req.WordIndex})
}

func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	var req models.DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	h.dispatch(w, r, Command{
		Type:      CmdDetectUsage,
		WordIndex: req.WordIndex,
		URL:       req.URL,
		Context:   req.Context,
	})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, Command{Type: CmdExportData})
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, Command{Type: CmdReset})
}

// dispatch fills in the authenticated user and runs the command, mapping the
// sentinel errors to their status codes.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, cmd Command) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	cmd.UserID = userID

	result, err := h.service.Dispatch(cmd)
	switch {
	case errors.Is(err, ErrInvalidSentence):
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "Sentence must use today's word"})
		return
	case errors.Is(err, ErrWordNeverShown), errors.Is(err, ErrWordOutOfRange):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Operation failed"})
		return
	}

	if result == nil {
		result = map[string]bool{"success": true}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.Achievements(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load achievements"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ── Scanning and settings ───────────────────────────────

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	matches, err := h.service.Scan(userID, req.Text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Scan failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

func (h *Handler) SetReminders(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.RemindersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.SetReminders(userID, req.Reminders); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save reminders"})
		return
	}
	writeJSON(w, http.StatusOK, req.Reminders)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
