// internal/app/features/materials/types.go
package materials

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

type typeOption struct {
	ID        string
	Label     string
	MaxNumber int
}

// typeOptions mirrors the fixed equipment catalog for select boxes.
func typeOptions() []typeOption {
	opts := make([]typeOption, 0, len(models.EquipmentTypes))
	for _, t := range models.EquipmentTypes {
		opts = append(opts, typeOption{ID: t.ID, Label: t.Label, MaxNumber: t.MaxNumber})
	}
	return opts
}

func typeLabel(id string) string {
	if t, ok := models.EquipmentTypeByID(id); ok {
		return t.Label
	}
	return id
}

type checkedOutRow struct {
	ID            primitive.ObjectID
	TypeLabel     string
	Number        int
	VolunteerName string
	CheckedOutAt  string
}

type volunteerOption struct {
	ID   primitive.ObjectID
	Name string
}

type listData struct {
	viewdata.BaseVM
	Notice     string
	Error      string
	Rows       []checkedOutRow
	Types      []typeOption
	Volunteers []volunteerOption
}

type manageRow struct {
	ID           primitive.ObjectID
	TypeLabel    string
	Number       int
	IsCheckedOut bool
}

type manageData struct {
	viewdata.BaseVM
	Notice string
	Error  string
	Rows   []manageRow
	Types  []typeOption
	Counts map[string]int64
}
