package model

// Material is a raw material that can be associated with a product.
type Material struct {
	ID     int    `gorm:"primaryKey"`
	Nombre string `gorm:"uniqueIndex;not null"`
}

func (Material) TableName() string { return "materiales" }
