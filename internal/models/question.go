package models

import "github.com/google/uuid"

// Question is one entry of the trivia wheel's question bank, keyed by letter.
type Question struct {
	ID            uuid.UUID `json:"id"`
	Letter        string    `json:"letter"`
	QuestionText  string    `json:"question_text"`
	CorrectAnswer string    `json:"correct_answer"`
}
