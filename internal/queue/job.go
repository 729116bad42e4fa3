package queue

import "encoding/json"

const (
	JobSendVerificationOTP = "send_verification_otp"
	JobTouchLastActive     = "touch_last_active"
	JobSweepStaleCalls     = "sweep_stale_calls"
)

type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Priority  int             `json:"priority"`
	Retry     int             `json:"retry"`
	MaxRetry  int             `json:"max_retry"`
	ErrorMsg  string          `json:"error_msg,omitempty"`
	CreatedAt int64           `json:"created_at"`
	ExpireAt  int64           `json:"expired_at"`
}

type OTPPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type TouchLastActivePayload struct {
	UserID string `json:"user_id"`
	At     int64  `json:"at"`
}

func MustMarshal(payload any) json.RawMessage {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	return b
}
