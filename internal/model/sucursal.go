package model

// Sucursal is a branch belonging to exactly one bodega.
type Sucursal struct {
	ID       int    `gorm:"primaryKey"`
	Nombre   string `gorm:"not null"`
	BodegaID int    `gorm:"index;not null"`

	Bodega *Bodega `gorm:"foreignKey:BodegaID"`
}

func (Sucursal) TableName() string { return "sucursales" }
