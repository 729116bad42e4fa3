package worker

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/Mandalorian7773/Collabie/config"
	"github.com/Mandalorian7773/Collabie/internal/queue"
	call_repo "github.com/Mandalorian7773/Collabie/internal/repo/call"
	user_repo "github.com/Mandalorian7773/Collabie/internal/repo/user"
	"github.com/Mandalorian7773/Collabie/state"
)

// staleCallHours is how long a call may stay active before the sweeper ends
// it. Covers calls orphaned by crashed servers that never emptied the room.
const staleCallHours = 24

type JobHandler struct {
	AppState *state.AppState
	UserRepo user_repo.UserRepoContract
	CallRepo call_repo.CallRepoContract
}

func (h *JobHandler) Handle(ctx context.Context, job queue.Job) error {
	switch job.Type {
	case queue.JobSendVerificationOTP:
		return h.handleSendVerificationOTP(ctx, job.Payload)
	case queue.JobTouchLastActive:
		return h.handleTouchLastActive(ctx, job.Payload)
	case queue.JobSweepStaleCalls:
		return h.handleSweepStaleCalls(ctx)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (h *JobHandler) handleSendVerificationOTP(ctx context.Context, raw json.RawMessage) error {
	var payload queue.OTPPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid otp payload: %w", err)
	}

	otp := generateOTP()

	key := fmt.Sprintf("otp:%s", payload.UserID)
	if err := h.AppState.Redis.Set(ctx, key, otp, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to save otp: %w", err)
	}

	return sendOTPMail(payload.Email, otp)
}

func (h *JobHandler) handleTouchLastActive(ctx context.Context, raw json.RawMessage) error {
	var payload queue.TouchLastActivePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid last-active payload: %w", err)
	}

	if err := h.UserRepo.TouchLastActive(ctx, payload.UserID, time.Unix(payload.At, 0)); err != nil {
		return fmt.Errorf("failed to touch last active: %s", err.Message)
	}
	return nil
}

func (h *JobHandler) handleSweepStaleCalls(ctx context.Context) error {
	ended, err := h.CallRepo.EndStaleCalls(ctx, staleCallHours)
	if err != nil {
		return fmt.Errorf("failed to sweep stale calls: %s", err.Message)
	}
	if ended > 0 {
		log.Info().Int64("ended", ended).Msg("Stale call sweep ended calls")
	}
	return nil
}

func generateOTP() string {
	b := make([]byte, 3)
	_, err := rand.Read(b)
	if err != nil {
		return "000000"
	}

	num := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
	otp := num % 1000000
	return fmt.Sprintf("%06d", otp)
}

func sendOTPMail(to, otp string) error {
	host := config.Conf.MAIL.SMTPHost
	port := config.Conf.MAIL.SMTPPort
	username := config.Conf.MAIL.Username
	password := config.Conf.MAIL.Password
	from := config.Conf.MAIL.From

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is: %s\n\nValid for 5 minutes.", otp))

	d := gomail.NewDialer(host, port, username, password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}
