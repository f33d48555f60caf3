package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is the registered product. Codigo is unique case-insensitively;
// the functional index on UPPER(codigo) created in infra enforces that at the
// storage layer (the service pre-check is UX only).
type Producto struct {
	ID          int             `gorm:"primaryKey"`
	Codigo      string          `gorm:"not null"`
	Nombre      string          `gorm:"not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion string          `gorm:"not null"`
	BodegaID    int             `gorm:"index;not null"`
	SucursalID  int             `gorm:"not null"`
	MonedaID    int             `gorm:"not null"`
	CreatedAt   time.Time

	Bodega   *Bodega   `gorm:"foreignKey:BodegaID"`
	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
	Moneda   *Moneda   `gorm:"foreignKey:MonedaID"`
}

func (Producto) TableName() string { return "productos" }
