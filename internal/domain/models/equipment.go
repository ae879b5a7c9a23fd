// internal/domain/models/equipment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Equipment is one physical item (a numbered jacket, vest, lamp, or walkie
// talkie) that can be checked out to a volunteer.
//
// Invariant: IsCheckedOut is true exactly when VolunteerID is set. The
// equipment store is the only writer of this pair and always mutates both
// fields together.
type Equipment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type   string             `bson:"type" json:"type"`     // see EquipmentTypes
	Number int                `bson:"number" json:"number"` // 1..MaxNumber(Type)

	VolunteerID  *primitive.ObjectID `bson:"volunteer_id,omitempty" json:"volunteer_id,omitempty"`
	IsCheckedOut bool                `bson:"is_checked_out" json:"is_checked_out"`
	CheckedOutAt *time.Time          `bson:"checked_out_at,omitempty" json:"checked_out_at,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
