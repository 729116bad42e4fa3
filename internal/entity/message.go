package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
	MessageTypeFile  = "file"
)

// Message is one direct message. There is no thread entity: chatId is the
// canonical conversation key, the two user ids sorted lexicographically and
// joined with ":".
type Message struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID      string        `bson:"chatId" json:"chatId"`
	SenderID    string        `bson:"senderId" json:"senderId"`
	Content     string        `bson:"content" json:"content"`
	MessageType string        `bson:"messageType" json:"messageType"`
	Read        bool          `bson:"read" json:"read"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}
