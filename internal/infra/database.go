package infra

import (
	"fmt"

	"github.com/rodrigovasdev/prueba-desis/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the registration schema, then applies the SQL patches GORM cannot
// express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Bodega{},
		&model.Sucursal{},
		&model.Moneda{},
		&model.Material{},
		&model.Producto{},
		&model.ProductoMaterial{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// The functional unique index is what makes codigo uniqueness case-insensitive
// AND race-proof: two concurrent submissions may both pass the in-transaction
// pre-check, but only one insert survives this index.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"unique index on UPPER(productos.codigo)",
			`CREATE UNIQUE INDEX IF NOT EXISTS uni_productos_codigo_upper ON productos (UPPER(codigo))`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
