package model

// ProductoMaterial links one producto to one material. The composite primary
// key makes duplicate pairs impossible at the storage layer, and the foreign
// keys reject association rows that name an unknown producto or material.
type ProductoMaterial struct {
	ProductoID int `gorm:"primaryKey"`
	MaterialID int `gorm:"primaryKey"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Material *Material `gorm:"foreignKey:MaterialID"`
}

func (ProductoMaterial) TableName() string { return "producto_materiales" }
