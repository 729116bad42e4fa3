package friend_dto

import "time"

type FriendResponse struct {
	ID        int64     `json:"id"`
	Requester string    `json:"requester"`
	Recipient string    `json:"recipient"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
