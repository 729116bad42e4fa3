package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	CallTypeVoice = "voice"
	CallTypeVideo = "video"

	CallStatusActive    = "active"
	CallStatusEnded     = "ended"
	CallStatusCancelled = "cancelled"
)

type CallSettings struct {
	VideoEnabled         bool `bson:"videoEnabled" json:"videoEnabled"`
	AudioEnabled         bool `bson:"audioEnabled" json:"audioEnabled"`
	ScreenSharingEnabled bool `bson:"screenSharingEnabled" json:"screenSharingEnabled"`
}

// Call is the registry record for a voice/video session. Participants carry
// set semantics: all mutations go through $addToSet/$pull, never
// read-modify-write.
type Call struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID       string        `bson:"roomId" json:"roomId"`
	Type         string        `bson:"type" json:"type"`
	Participants []string      `bson:"participants" json:"participants"`
	CreatedBy    string        `bson:"createdBy" json:"createdBy"`
	Status       string        `bson:"status" json:"status"`
	StartedAt    time.Time     `bson:"startedAt" json:"startedAt"`
	EndedAt      *time.Time    `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
	Settings     CallSettings  `bson:"settings" json:"settings"`
}

func (c *Call) Duration() time.Duration {
	if c.EndedAt != nil {
		return c.EndedAt.Sub(c.StartedAt)
	}
	if !c.StartedAt.IsZero() {
		return time.Since(c.StartedAt)
	}
	return 0
}

func (c *Call) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
