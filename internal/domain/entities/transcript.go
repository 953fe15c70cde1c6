package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transcript is one saved transcription. UserID holds the identity
// provider's subject claim for the owning user.
type Transcript struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Snippet       string             `json:"snippet" bson:"snippet"`
	Transcription string             `json:"transcription,omitempty" bson:"transcription"`
	Summary       string             `json:"summary,omitempty" bson:"summary,omitempty"`
	UserID        string             `json:"userId" bson:"userId"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
