package model

// Bodega is a warehouse: the top-level grouping for sucursales.
// Reference data — never written by the registration flow.
type Bodega struct {
	ID     int    `gorm:"primaryKey"`
	Nombre string `gorm:"uniqueIndex;not null"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Bodega) TableName() string { return "bodegas" }
