// internal/database/question.go
package database

import (
	"context"

	"github.com/pasapalabra/pasapalabra-live/internal/models"
)

// GetRandomQuestion returns one random active question for the wheel letter.
func GetRandomQuestion(ctx context.Context, letter string) (*models.Question, error) {
	var q models.Question
	query := `
	SELECT id, letter, question_text, correct_answer
	FROM questions
	WHERE letter=$1 AND is_active=true
	ORDER BY RANDOM()
	LIMIT 1
	`
	err := DB.QueryRow(ctx, query, letter).Scan(
		&q.ID, &q.Letter, &q.QuestionText, &q.CorrectAnswer,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
