package repository

import (
	"context"

	"github.com/rodrigovasdev/prueba-desis/internal/model"

	"gorm.io/gorm"
)

// LookupRepository serves the read-only reference listings backing the form.
type LookupRepository interface {
	ListBodegas(ctx context.Context) ([]model.Bodega, error)
	// ListSucursalesPorBodega filters by warehouse name, case-insensitively,
	// and preloads the owning Bodega so the listing can echo its name.
	ListSucursalesPorBodega(ctx context.Context, nombreBodega string) ([]model.Sucursal, error)
	ListMonedas(ctx context.Context) ([]model.Moneda, error)
	ListMateriales(ctx context.Context) ([]model.Material, error)
}

type lookupRepo struct{ db *gorm.DB }

func NewLookupRepository(db *gorm.DB) LookupRepository { return &lookupRepo{db: db} }

func (r *lookupRepo) ListBodegas(ctx context.Context) ([]model.Bodega, error) {
	var bodegas []model.Bodega
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&bodegas).Error
	return bodegas, err
}

func (r *lookupRepo) ListSucursalesPorBodega(ctx context.Context, nombreBodega string) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	err := r.db.WithContext(ctx).
		Joins("JOIN bodegas ON bodegas.id = sucursales.bodega_id").
		Where("LOWER(bodegas.nombre) = LOWER(?)", nombreBodega).
		Preload("Bodega").
		Order("sucursales.nombre ASC").
		Find(&sucursales).Error
	return sucursales, err
}

func (r *lookupRepo) ListMonedas(ctx context.Context) ([]model.Moneda, error) {
	var monedas []model.Moneda
	err := r.db.WithContext(ctx).Order("codigo ASC").Find(&monedas).Error
	return monedas, err
}

func (r *lookupRepo) ListMateriales(ctx context.Context) ([]model.Material, error) {
	var materiales []model.Material
	err := r.db.WithContext(ctx).Order("id ASC").Find(&materiales).Error
	return materiales, err
}
