package repository

import (
	"context"

	"github.com/rodrigovasdev/prueba-desis/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for the registration
// procedure. The service depends on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
//
// The *Tx methods run inside the transaction opened by Transact — callers
// must pass the tx instance they were handed.
type ProductoRepository interface {
	// Transact runs fn inside a single database transaction. Any error
	// returned by fn (or a context cancellation mid-flight) rolls the whole
	// unit back; no partial rows survive.
	Transact(ctx context.Context, fn func(tx *gorm.DB) error) error

	ExistsByCodigoTx(tx *gorm.DB, codigo string) (bool, error)
	SucursalEnBodegaTx(tx *gorm.DB, sucursalID, bodegaID int) (bool, error)
	CreateTx(tx *gorm.DB, p *model.Producto) error
	CreateMaterialesTx(tx *gorm.DB, productoID int, materialIDs []int) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// ExistsByCodigoTx is the case-insensitive duplicate pre-check. It is UX only;
// the functional unique index on UPPER(codigo) is the authoritative backstop
// under concurrent submissions.
func (r *productoRepo) ExistsByCodigoTx(tx *gorm.DB, codigo string) (bool, error) {
	var count int64
	err := tx.Model(&model.Producto{}).
		Where("UPPER(codigo) = UPPER(?)", codigo).
		Count(&count).Error
	return count > 0, err
}

func (r *productoRepo) SucursalEnBodegaTx(tx *gorm.DB, sucursalID, bodegaID int) (bool, error) {
	var count int64
	err := tx.Model(&model.Sucursal{}).
		Where("id = ? AND bodega_id = ?", sucursalID, bodegaID).
		Count(&count).Error
	return count > 0, err
}

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Create(p).Error
}

func (r *productoRepo) CreateMaterialesTx(tx *gorm.DB, productoID int, materialIDs []int) error {
	filas := make([]model.ProductoMaterial, 0, len(materialIDs))
	for _, materialID := range materialIDs {
		filas = append(filas, model.ProductoMaterial{ProductoID: productoID, MaterialID: materialID})
	}
	return tx.Create(&filas).Error
}
