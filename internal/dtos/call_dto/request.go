package call_dto

type StartCallRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=voice video"`
}

type EndCallRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=ended cancelled"`
}
