// internal/domain/models/equipmenttypes.go
package models

// EquipmentType describes one kind of equipment and the highest number an
// item of that kind can carry.
type EquipmentType struct {
	ID        string // stored in Equipment.Type
	Label     string // shown in the UI
	MaxNumber int
}

// EquipmentTypes is the fixed set of equipment kinds. Jackets and vests are
// numbered 1..100; lamps and walkie talkies 1..20.
var EquipmentTypes = []EquipmentType{
	{ID: "jacket", Label: "Jacket", MaxNumber: 100},
	{ID: "vest", Label: "Vest", MaxNumber: 100},
	{ID: "lamp", Label: "Lamp", MaxNumber: 20},
	{ID: "walkie_talkie", Label: "Walkie Talkie", MaxNumber: 20},
}

// EquipmentTypeByID returns the type definition for id, if it exists.
func EquipmentTypeByID(id string) (EquipmentType, bool) {
	for _, t := range EquipmentTypes {
		if t.ID == id {
			return t, true
		}
	}
	return EquipmentType{}, false
}

// IsValidEquipmentNumber reports whether number is within range for the
// given type id. Unknown type ids are never valid.
func IsValidEquipmentNumber(typeID string, number int) bool {
	t, ok := EquipmentTypeByID(typeID)
	if !ok {
		return false
	}
	return number >= 1 && number <= t.MaxNumber
}
