package call_dto

import "time"

type CallResponse struct {
	ID           string       `json:"id"`
	RoomID       string       `json:"room_id"`
	Type         string       `json:"type"`
	Participants []string     `json:"participants"`
	CreatedBy    string       `json:"created_by"`
	Status       string       `json:"status"`
	StartedAt    time.Time    `json:"started_at"`
	EndedAt      *time.Time   `json:"ended_at,omitempty"`
	Duration     float64      `json:"duration_seconds"`
	Settings     CallSettings `json:"settings"`
}

type CallSettings struct {
	VideoEnabled         bool `json:"video_enabled"`
	AudioEnabled         bool `json:"audio_enabled"`
	ScreenSharingEnabled bool `json:"screen_sharing_enabled"`
}
