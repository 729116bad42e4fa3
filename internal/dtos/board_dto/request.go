package board_dto

type CreateBoardRequest struct {
	Title string `json:"title" validate:"required,min=2,max=100"`
}

type CreateListRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

type AddTaskRequest struct {
	ListID      string  `json:"list_id" validate:"required"`
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	AssignedTo  *string `json:"assigned_to,omitempty" validate:"omitempty,uuid4"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	AssignedTo  *string `json:"assigned_to,omitempty" validate:"omitempty,uuid4"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date,omitempty"`
}

type MoveTaskRequest struct {
	ToListID string `json:"to_list_id" validate:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}
