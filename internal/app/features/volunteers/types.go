// internal/app/features/volunteers/types.go
package volunteers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// volunteerInput defines validation rules for creating or editing a volunteer.
type volunteerInput struct {
	FirstName   string `validate:"required,max=100" label:"Voornaam"`
	LastName    string `validate:"required,max=100" label:"Achternaam"`
	PhoneNumber string `validate:"required,max=30" label:"Telefoonnummer"`
	Email       string `validate:"email,max=254" label:"E-mailadres"`
}

type volunteerRow struct {
	ID          primitive.ObjectID
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

type listData struct {
	viewdata.BaseVM
	Notice      string
	SearchQuery string
	Rows        []volunteerRow
	Total       int
}

type formData struct {
	formutil.Base
	ID          string
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

type viewData struct {
	viewdata.BaseVM
	Volunteer models.Volunteer
	Materials []materialLine
	Plannings []planningLine
}

type materialLine struct {
	ID       primitive.ObjectID
	TypeName string
	Number   int
}

type planningLine struct {
	ID        primitive.ObjectID
	RoomName  string
	StartDate string
	EndDate   string
}
