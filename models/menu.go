package models

import "time"

type ModifierKind string

const (
	ModifierSize  ModifierKind = "size"
	ModifierAddOn ModifierKind = "addon"
)

type MenuItem struct {
	ID            string    `gorm:"primaryKey;type:varchar(50)" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Category      string    `gorm:"type:varchar(100)" json:"category"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	SizeGroupID   string    `gorm:"type:varchar(50)" json:"size_group_id,omitempty"`
	AddOnGroupIDs []string  `gorm:"serializer:json" json:"add_on_group_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ModifierGroup struct {
	ID      string           `gorm:"primaryKey;type:varchar(50)" json:"id"`
	Name    string           `gorm:"type:varchar(100);not null" json:"name"`
	Kind    ModifierKind     `gorm:"type:varchar(10);not null" json:"kind"`
	Options []ModifierOption `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"options"`
}

type ModifierOption struct {
	ID      string  `gorm:"primaryKey;type:varchar(50)" json:"id"`
	GroupID string  `gorm:"type:varchar(50);not null;index" json:"group_id"`
	Name    string  `gorm:"type:varchar(100);not null" json:"name"`
	Price   float64 `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
}
