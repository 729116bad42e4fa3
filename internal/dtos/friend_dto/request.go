package friend_dto

type SendRequestRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid4"`
}
