package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/daily-word/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// GetWord returns the catalog entry at {index}.
func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid word index"})
		return
	}
	word, ok := h.catalog.Word(index)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Word not found"})
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// Lookup resolves selected text to a catalog entry, the define-from-selection
// path.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("word")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "word query parameter is required"})
		return
	}
	index := h.catalog.FindByText(text)
	if index < 0 {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Word is not in the Daily Word vocabulary"})
		return
	}
	word, _ := h.catalog.Word(index)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"word_index": index,
		"word":       word,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
