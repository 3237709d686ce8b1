// internal/handlers/question.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/pasapalabra/pasapalabra-live/internal/database"
)

// QuestionHandler returns one random active question for a wheel letter.
func QuestionHandler(w http.ResponseWriter, r *http.Request) {
	letter := strings.ToUpper(chi.URLParam(r, "letter"))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		http.Error(w, "letter must be a single character A-Z", http.StatusBadRequest)
		return
	}

	q, err := database.GetRandomQuestion(r.Context(), letter)
	if errors.Is(err, pgx.ErrNoRows) {
		http.Error(w, "no questions found for this letter", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(q)
}
