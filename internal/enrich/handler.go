package enrich

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/daily-word/backend/internal/catalog"
	"github.com/daily-word/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	catalog *catalog.Catalog
	llm     LLMClient
}

func NewHandler(cat *catalog.Catalog, llm LLMClient) *Handler {
	return &Handler{catalog: cat, llm: llm}
}

// Enrich returns a freshly generated example sentence and usage note for the
// word at {index}.
func (h *Handler) Enrich(w http.ResponseWriter, r *http.Request) {
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

	enrichment, err := h.llm.Enrich(r.Context(), word)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Enrichment unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, enrichment)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
