// internal/domain/models/volunteer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Volunteer is one volunteer record. Volunteers do not have accounts;
// they are managed by signed-in staff.
type Volunteer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`

	// SearchCI is the folded concatenation of first name, last name, and
	// phone number. List search does a substring match against it.
	SearchCI string `bson:"search_ci" json:"-"`

	PhoneNumber string `bson:"phone_number" json:"phone_number"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// FullName returns "First Last" for display and audit entries.
func (v *Volunteer) FullName() string {
	return v.FirstName + " " + v.LastName
}
