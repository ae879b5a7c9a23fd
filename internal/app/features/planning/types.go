// internal/app/features/planning/types.go
package planning

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

// inputLayout is the wire format of <input type="date">.
const inputLayout = "2006-01-02"

// displayLayout is how dates render in tables.
const displayLayout = "02-01-2006"

type planningRow struct {
	ID            primitive.ObjectID
	VolunteerName string
	RoomName      string
	StartDate     string
	EndDate       string
}

type listData struct {
	viewdata.BaseVM
	Notice string
	Error  string
	Rows   []planningRow

	// FilterDate echoes the ?date= filter in input format; empty shows all.
	FilterDate string
}

type selectOption struct {
	ID   primitive.ObjectID
	Name string
}

type formData struct {
	formutil.Base
	ID          string
	VolunteerID string
	RoomID      string
	StartDate   string
	EndDate     string
	Volunteers  []selectOption
	Rooms       []selectOption
}
