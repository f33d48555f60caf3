package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rodrigovasdev/prueba-desis/internal/apierror"
	"github.com/rodrigovasdev/prueba-desis/internal/dto"
	"github.com/rodrigovasdev/prueba-desis/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const msgErrorConexion = "Error de conexión a la base de datos"

// Cache keys for the unfiltered listings. Reference data changes rarely, so a
// short TTL keeps the form snappy without an invalidation protocol.
const (
	cacheKeyBodegas    = "lookup:bodegas"
	cacheKeyMonedas    = "lookup:monedas"
	cacheKeyMateriales = "lookup:materiales"
)

// LookupService serves the reference listings the form needs before calling
// the registration procedure. Read-only, no side effects; empty results are
// valid, not an error.
type LookupService interface {
	Bodegas(ctx context.Context) ([]dto.BodegaItem, error)
	Sucursales(ctx context.Context, nombreBodega string) ([]dto.SucursalItem, error)
	Monedas(ctx context.Context) ([]dto.MonedaItem, error)
	Materiales(ctx context.Context) ([]dto.MaterialItem, error)
}

type lookupService struct {
	repo repository.LookupRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewLookupService builds the lookup service. rdb may be nil (unit test mode);
// every cache failure degrades silently to a database read.
func NewLookupService(repo repository.LookupRepository, rdb *redis.Client, ttl time.Duration) LookupService {
	return &lookupService{repo: repo, rdb: rdb, ttl: ttl}
}

func (s *lookupService) Bodegas(ctx context.Context) ([]dto.BodegaItem, error) {
	var items []dto.BodegaItem
	if s.fromCache(ctx, cacheKeyBodegas, &items) {
		return items, nil
	}

	bodegas, err := s.repo.ListBodegas(ctx)
	if err != nil {
		return nil, apierror.Database(msgErrorConexion, err)
	}
	items = make([]dto.BodegaItem, 0, len(bodegas))
	for _, b := range bodegas {
		items = append(items, dto.BodegaItem{ID: b.ID, Nombre: b.Nombre})
	}
	s.toCache(ctx, cacheKeyBodegas, items)
	return items, nil
}

// Sucursales is the only filtered listing; it always hits the database.
func (s *lookupService) Sucursales(ctx context.Context, nombreBodega string) ([]dto.SucursalItem, error) {
	sucursales, err := s.repo.ListSucursalesPorBodega(ctx, nombreBodega)
	if err != nil {
		return nil, apierror.Database(msgErrorConexion, err)
	}
	items := make([]dto.SucursalItem, 0, len(sucursales))
	for _, su := range sucursales {
		item := dto.SucursalItem{ID: su.ID, Nombre: su.Nombre, BodegaID: su.BodegaID}
		if su.Bodega != nil {
			item.NombreBodega = su.Bodega.Nombre
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *lookupService) Monedas(ctx context.Context) ([]dto.MonedaItem, error) {
	var items []dto.MonedaItem
	if s.fromCache(ctx, cacheKeyMonedas, &items) {
		return items, nil
	}

	monedas, err := s.repo.ListMonedas(ctx)
	if err != nil {
		return nil, apierror.Database(msgErrorConexion, err)
	}
	items = make([]dto.MonedaItem, 0, len(monedas))
	for _, m := range monedas {
		items = append(items, dto.MonedaItem{ID: m.ID, Codigo: m.Codigo, Nombre: m.Nombre})
	}
	s.toCache(ctx, cacheKeyMonedas, items)
	return items, nil
}

func (s *lookupService) Materiales(ctx context.Context) ([]dto.MaterialItem, error) {
	var items []dto.MaterialItem
	if s.fromCache(ctx, cacheKeyMateriales, &items) {
		return items, nil
	}

	materiales, err := s.repo.ListMateriales(ctx)
	if err != nil {
		return nil, apierror.Database(msgErrorConexion, err)
	}
	items = make([]dto.MaterialItem, 0, len(materiales))
	for _, m := range materiales {
		items = append(items, dto.MaterialItem{ID: m.ID, Nombre: m.Nombre})
	}
	s.toCache(ctx, cacheKeyMateriales, items)
	return items, nil
}

// fromCache loads a cached listing into out. Returns false on miss or any
// cache error.
func (s *lookupService) fromCache(ctx context.Context, key string, out interface{}) bool {
	if s.rdb == nil {
		return false
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("lectura de cache fallida")
		}
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (s *lookupService) toCache(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("escritura de cache fallida")
	}
}
