package models

import "time"

type TableStatus string

const (
	TableStatusAvailable     TableStatus = "available"
	TableStatusInUse         TableStatus = "in_use"
	TableStatusNeedsCleaning TableStatus = "needs_cleaning"
)

// Position is the placement of a table on the floor plan.
type Position struct {
	X float64 `gorm:"column:pos_x;not null;default:0" json:"x"`
	Y float64 `gorm:"column:pos_y;not null;default:0" json:"y"`
}

type Table struct {
	ID        string      `gorm:"primaryKey;type:varchar(50)" json:"id"`
	Name      string      `gorm:"type:varchar(100);not null" json:"name"`
	Position  Position    `gorm:"embedded" json:"position"`
	Capacity  int         `gorm:"not null;default:2" json:"capacity"`
	Shape     string      `gorm:"type:varchar(20);not null;default:'square'" json:"shape"`
	Status    TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
