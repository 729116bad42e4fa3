package board_dto

import "time"

type BoardResponse struct {
	ID        string         `json:"id"`
	ChannelID string         `json:"channel_id"`
	Title     string         `json:"title"`
	Lists     []ListResponse `json:"lists"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type ListResponse struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Tasks []TaskResponse `json:"tasks"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	AssignedTo  string            `json:"assigned_to,omitempty"`
	Priority    string            `json:"priority"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Comments    []CommentResponse `json:"comments"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CommentResponse struct {
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
