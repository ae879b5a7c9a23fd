// internal/domain/models/planning.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Planning schedules one volunteer into one room for a date range
// (inclusive on both ends). No history is kept after deletion.
type Planning struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VolunteerID primitive.ObjectID `bson:"volunteer_id" json:"volunteer_id"`
	RoomID      primitive.ObjectID `bson:"room_id" json:"room_id"`

	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
