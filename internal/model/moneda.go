package model

// Moneda is a currency the product price can be expressed in.
type Moneda struct {
	ID     int    `gorm:"primaryKey"`
	Codigo string `gorm:"uniqueIndex;not null"` // ISO-style code: CLP, USD, …
	Nombre string `gorm:"not null"`
}

func (Moneda) TableName() string { return "monedas" }
