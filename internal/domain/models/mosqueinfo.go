// internal/domain/models/mosqueinfo.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MosqueInfo is the singleton record of organizational contact details.
// There is one document in the mosque_info collection; admin edits are
// persisted via upsert.
type MosqueInfo struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	MenAddress   string `bson:"men_address" json:"men_address"`
	MenCity      string `bson:"men_city" json:"men_city"`
	WomenAddress string `bson:"women_address" json:"women_address"`
	WomenCity    string `bson:"women_city" json:"women_city"`
	Phone        string `bson:"phone" json:"phone"`
	Email        string `bson:"email" json:"email"`

	UpdatedAt     *time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"updated_by_id,omitempty"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
}

// DefaultMosqueInfo is returned when no document has been saved yet.
func DefaultMosqueInfo() MosqueInfo {
	return MosqueInfo{
		MenAddress:   "Sint-Bernardsesteenweg 289",
		MenCity:      "2660 Hoboken",
		WomenAddress: "Polostraat 59",
		WomenCity:    "2660 Hoboken",
		Phone:        "032940611",
		Email:        "info@mefen.be",
	}
}
