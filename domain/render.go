package domain

import (
	"time"

	"github.com/google/uuid"
)

// RenderRecord is the BSON representation of an image written for a session.
type RenderRecord struct {
	ID            uuid.UUID `bson:"_id"`
	SessionID     uuid.UUID `bson:"sessionId"`
	Path          string    `bson:"path"`
	ThumbnailPath string    `bson:"thumbnailPath,omitempty"`
	Width         int       `bson:"width"`
	Height        int       `bson:"height"`
	Bytes         int64     `bson:"bytes"`
	CreatedAt     time.Time `bson:"createdAt"`
}
