// Command seed loads the reference data the registration form depends on:
// bodegas with their sucursales, monedas, and materiales. Idempotent — rows
// are matched by name (or code, for monedas) and never duplicated, so it is
// safe to run against a database that already has data.
package main

import (
	"os"
	"time"

	"github.com/rodrigovasdev/prueba-desis/internal/config"
	"github.com/rodrigovasdev/prueba-desis/internal/infra"
	"github.com/rodrigovasdev/prueba-desis/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var bodegas = map[string][]string{
	"Bodega Central": {"Sucursal Santiago Centro", "Sucursal Providencia", "Sucursal Maipú"},
	"Bodega Norte":   {"Sucursal Antofagasta", "Sucursal La Serena"},
	"Bodega Sur":     {"Sucursal Concepción", "Sucursal Temuco", "Sucursal Puerto Montt"},
}

var monedas = []model.Moneda{
	{Codigo: "CLP", Nombre: "Peso Chileno"},
	{Codigo: "EUR", Nombre: "Euro"},
	{Codigo: "UF", Nombre: "Unidad de Fomento"},
	{Codigo: "USD", Nombre: "Dólar Estadounidense"},
}

var materiales = []string{
	"Madera", "Metal", "Plástico", "Vidrio", "Tela", "Cuero", "Papel", "Goma",
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := seed(db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("reference data seeded")
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for nombre, sucursales := range bodegas {
			bodega := model.Bodega{Nombre: nombre}
			if err := tx.Where("nombre = ?", nombre).FirstOrCreate(&bodega).Error; err != nil {
				return err
			}
			for _, s := range sucursales {
				sucursal := model.Sucursal{Nombre: s, BodegaID: bodega.ID}
				if err := tx.Where("nombre = ? AND bodega_id = ?", s, bodega.ID).FirstOrCreate(&sucursal).Error; err != nil {
					return err
				}
			}
		}

		for _, m := range monedas {
			moneda := m
			if err := tx.Where("codigo = ?", m.Codigo).FirstOrCreate(&moneda).Error; err != nil {
				return err
			}
		}

		for _, nombre := range materiales {
			material := model.Material{Nombre: nombre}
			if err := tx.Where("nombre = ?", nombre).FirstOrCreate(&material).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
