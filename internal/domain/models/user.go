// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that can sign in: an admin or a medewerker
// (regular staff user). Volunteers are not users; they are records managed
// by users.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	// Email is stored normalized (lowercased, trimmed) and is unique.
	Email string `bson:"email" json:"email"`

	// Bcrypt hash. Never serialized to JSON.
	PasswordHash string `bson:"password_hash" json:"-"`

	Role   string `bson:"role" json:"role"`                       // admin | medewerker
	Status string `bson:"status,omitempty" json:"status,omitempty"` // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Roles recognized by the application. Medewerker is the default for
// self-registered accounts; admins are promoted explicitly.
const (
	RoleAdmin      = "admin"
	RoleMedewerker = "medewerker"
)

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
