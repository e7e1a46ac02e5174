package dto

import "github.com/google/uuid"

type CreateQuestionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Images      []string `json:"images,omitempty"`
	GPSLocation string   `json:"gps_location,omitempty"`
	Attempts    string   `json:"attempts,omitempty"`
	Priority    string   `json:"priority,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id"`
	Content    string    `json:"content"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
