package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rodrigovasdev/prueba-desis/internal/apierror"
	"github.com/rodrigovasdev/prueba-desis/internal/dto"
	"github.com/rodrigovasdev/prueba-desis/internal/model"
	"github.com/rodrigovasdev/prueba-desis/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ProductoRepository stub ────────────────────────────────────────
// Transact snapshots state before running fn and restores it on error, so the
// rollback contract is observable without a real database.

type stubProductoRepo struct {
	productos  []model.Producto
	materiales []model.ProductoMaterial
	nextID     int

	// sucursalID → bodegaID, the referential data the tx verifies against
	sucursales map[int]int

	failExistsCheck      bool
	failCreateProducto   error
	failCreateMateriales error
	alCrearMateriales    func()
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		nextID: 1,
		sucursales: map[int]int{
			2: 1, // sucursal 2 belongs to bodega 1
			3: 1,
			5: 4,
		},
	}
}

func (r *stubProductoRepo) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	prodSnap := append([]model.Producto(nil), r.productos...)
	matSnap := append([]model.ProductoMaterial(nil), r.materiales...)
	idSnap := r.nextID

	// Same contract as a real transaction: a cancelled context fails at
	// begin or at commit, never leaving staged rows behind.
	err := ctx.Err()
	if err == nil {
		err = fn(nil)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.productos, r.materiales, r.nextID = prodSnap, matSnap, idSnap
		return err
	}
	return nil
}

func (r *stubProductoRepo) ExistsByCodigoTx(_ *gorm.DB, codigo string) (bool, error) {
	if r.failExistsCheck {
		return false, errors.New("connection refused")
	}
	for _, p := range r.productos {
		if strings.EqualFold(p.Codigo, codigo) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductoRepo) SucursalEnBodegaTx(_ *gorm.DB, sucursalID, bodegaID int) (bool, error) {
	return r.sucursales[sucursalID] == bodegaID, nil
}

func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	if r.failCreateProducto != nil {
		return r.failCreateProducto
	}
	p.ID = r.nextID
	r.nextID++
	r.productos = append(r.productos, *p)
	return nil
}

func (r *stubProductoRepo) CreateMaterialesTx(_ *gorm.DB, productoID int, materialIDs []int) error {
	if r.alCrearMateriales != nil {
		r.alCrearMateriales()
	}
	if r.failCreateMateriales != nil {
		return r.failCreateMateriales
	}
	for _, id := range materialIDs {
		r.materiales = append(r.materiales, model.ProductoMaterial{ProductoID: productoID, MaterialID: id})
	}
	return nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func solicitudValida() dto.RegistrarProductoRequest {
	bodega, sucursal, moneda := 1, 2, 1
	return dto.RegistrarProductoRequest{
		Codigo:      "ABC123",
		Nombre:      "Widget",
		Bodega:      &bodega,
		Sucursal:    &sucursal,
		Moneda:      &moneda,
		Precio:      "19.99",
		Descripcion: "A useful widget for testing",
		Materiales:  []int{3, 4},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarExitoso(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewRegistroService(repo)

	resp, err := svc.Registrar(context.Background(), solicitudValida())
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, "Producto guardado exitosamente", resp.Message)
	assert.Equal(t, 1, resp.IDProducto)
	assert.Equal(t, "ABC123", resp.Codigo)
	assert.Equal(t, 2, resp.MaterialesInsertados)

	require.Len(t, repo.productos, 1)
	assert.Equal(t, "ABC123", repo.productos[0].Codigo)
	assert.Equal(t, "19.99", repo.productos[0].Precio.String())
	require.Len(t, repo.materiales, 2)
	assert.Equal(t, 1, repo.materiales[0].ProductoID)
	assert.Equal(t, 3, repo.materiales[0].MaterialID)
	assert.Equal(t, 4, repo.materiales[1].MaterialID)
}

func TestRegistrarCamposRequeridos(t *testing.T) {
	casos := []struct {
		nombre  string
		mutar   func(*dto.RegistrarProductoRequest)
		mensaje string
	}{
		{"codigo vacio", func(r *dto.RegistrarProductoRequest) { r.Codigo = "" }, "El campo 'codigo' es requerido"},
		{"codigo en blanco", func(r *dto.RegistrarProductoRequest) { r.Codigo = "   " }, "El campo 'codigo' es requerido"},
		{"nombre vacio", func(r *dto.RegistrarProductoRequest) { r.Nombre = "" }, "El campo 'nombre' es requerido"},
		{"bodega ausente", func(r *dto.RegistrarProductoRequest) { r.Bodega = nil }, "El campo 'bodega' es requerido"},
		{"sucursal ausente", func(r *dto.RegistrarProductoRequest) { r.Sucursal = nil }, "El campo 'sucursal' es requerido"},
		{"moneda ausente", func(r *dto.RegistrarProductoRequest) { r.Moneda = nil }, "El campo 'moneda' es requerido"},
		{"precio vacio", func(r *dto.RegistrarProductoRequest) { r.Precio = "" }, "El campo 'precio' es requerido"},
		{"descripcion vacia", func(r *dto.RegistrarProductoRequest) { r.Descripcion = "" }, "El campo 'descripcion' es requerido"},
		{"materiales ausentes", func(r *dto.RegistrarProductoRequest) { r.Materiales = nil }, "El campo 'materiales' es requerido"},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			repo := newStubProductoRepo()
			svc := NewRegistroService(repo)

			req := solicitudValida()
			tc.mutar(&req)

			_, err := svc.Registrar(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
			assert.Equal(t, tc.mensaje, err.Error())
			assert.Empty(t, repo.productos)
			assert.Empty(t, repo.materiales)
		})
	}
}

func TestRegistrarPrimeraViolacionGana(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewRegistroService(repo)

	// Multiple fields missing: the first in submission order is reported.
	req := solicitudValida()
	req.Codigo = ""
	req.Precio = ""
	req.Materiales = nil

	_, err := svc.Registrar(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "El campo 'codigo' es requerido", err.Error())
}

func TestRegistrarMateriales(t *testing.T) {
	casos := []struct {
		nombre     string
		materiales []int
		mensaje    string
	}{
		{"uno solo", []int{3}, "Debe seleccionar al menos 2 materiales"},
		{"vacio", []int{}, "Debe seleccionar al menos 2 materiales"},
		{"repetidos", []int{3, 3}, "Debe seleccionar al menos 2 materiales distintos"},
		{"repetido entre varios", []int{3, 4, 3}, "Debe seleccionar al menos 2 materiales distintos"},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			repo := newStubProductoRepo()
			svc := NewRegistroService(repo)

			req := solicitudValida()
			req.Materiales = tc.materiales

			_, err := svc.Registrar(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
			assert.Equal(t, tc.mensaje, err.Error())
			assert.Empty(t, repo.productos)
		})
	}
}

func TestRegistrarPrecio(t *testing.T) {
	casos := []struct {
		nombre  string
		precio  dto.Precio
		mensaje string
	}{
		{"no numerico", "abc", "El precio debe ser un número positivo"},
		{"negativo", "-5", "El precio debe ser un número positivo"},
		{"cero", "0", "El precio debe ser un número positivo"},
		{"tres decimales", "19.999", "El precio debe ser un número positivo con hasta dos decimales"},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			repo := newStubProductoRepo()
			svc := NewRegistroService(repo)

			req := solicitudValida()
			req.Precio = tc.precio

			_, err := svc.Registrar(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
			assert.Equal(t, tc.mensaje, err.Error())
			assert.Empty(t, repo.productos)
		})
	}

	t.Run("dos decimales exactos", func(t *testing.T) {
		repo := newStubProductoRepo()
		svc := NewRegistroService(repo)

		req := solicitudValida()
		req.Precio = "0.01"

		_, err := svc.Registrar(context.Background(), req)
		require.NoError(t, err)
	})
}

func TestRegistrarFormatoCodigo(t *testing.T) {
	casos := []string{
		"AB1",              // demasiado corto
		"ABCDEF",           // sin dígito
		"123456",           // sin letra
		"ABC 123",          // espacio
		"ABC-123",          // guión
		"ABCDEFGH12345678", // 16 caracteres
	}

	for _, codigo := range casos {
		t.Run(codigo, func(t *testing.T) {
			repo := newStubProductoRepo()
			svc := NewRegistroService(repo)

			req := solicitudValida()
			req.Codigo = codigo

			_, err := svc.Registrar(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
			assert.Equal(t, "El código debe tener entre 5 y 15 caracteres alfanuméricos, con al menos una letra y un número", err.Error())
		})
	}
}

func TestRegistrarLargoNombreYDescripcion(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewRegistroService(repo)

	req := solicitudValida()
	req.Nombre = "W"
	_, err := svc.Registrar(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "El nombre debe tener entre 2 y 50 caracteres", err.Error())

	req = solicitudValida()
	req.Nombre = strings.Repeat("a", 51)
	_, err = svc.Registrar(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "El nombre debe tener entre 2 y 50 caracteres", err.Error())

	req = solicitudValida()
	req.Descripcion = "muy corta"
	_, err = svc.Registrar(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "La descripción debe tener entre 10 y 1000 caracteres", err.Error())

	req = solicitudValida()
	req.Descripcion = strings.Repeat("a", 1001)
	_, err = svc.Registrar(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "La descripción debe tener entre 10 y 1000 caracteres", err.Error())
}

func TestRegistrarCodigoDuplicado(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewRegistroService(repo)

	_, err := svc.Registrar(context.Background(), solicitudValida())
	require.NoError(t, err)

	// Same code, different case: still a duplicate.
	req := solicitudValida()
	req.Codigo = "abc123"

	_, err = svc.Registrar(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindDuplicate, apierror.KindOf(err))
	assert.Equal(t, "El código del producto ya está registrado", err.Error())

	// No additional rows were written.
	assert.Len(t, repo.productos, 1)
	assert.Len(t, repo.materiales, 2)
}

func TestRegistrarCarreraDeUnicidad(t *testing.T) {
	// The pre-check passes but the insert hits the unique index: the
	// constraint violation is reported as the same duplicate error.
	repo := newStubProductoRepo()
	repo.failCreateProducto = &pgconn.PgError{Code: "23505", ConstraintName: "uni_productos_codigo_upper"}
	svc := NewRegistroService(repo)

	_, err := svc.Registrar(context.Background(), solicitudValida())
	require.Error(t, err)
	assert.Equal(t, apierror.KindDuplicate, apierror.KindOf(err))
	assert.Equal(t, "El código del producto ya está registrado", err.Error())
	assert.Empty(t, repo.productos)
}

func TestRegistrarRollbackEnMateriales(t *testing.T) {
	repo := newStubProductoRepo()
	repo.failCreateMateriales = errors.New("insert failed")
	svc := NewRegistroService(repo)

	_, err := svc.Registrar(context.Background(), solicitudValida())
	require.Error(t, err)
	assert.Equal(t, apierror.KindDatabase, apierror.KindOf(err))
	assert.Equal(t, "Error de base de datos", err.Error())

	// Full rollback: the parent insert did not survive either.
	assert.Empty(t, repo.productos)
	assert.Empty(t, repo.materiales)
}

func TestRegistrarContextoCancelado(t *testing.T) {
	// A caller that already gave up never gets a transaction.
	repo := newStubProductoRepo()
	svc := NewRegistroService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Registrar(ctx, solicitudValida())
	require.Error(t, err)
	assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
	assert.Empty(t, repo.productos)
	assert.Empty(t, repo.materiales)
}

func TestRegistrarCancelacionDentroDeLaTransaccion(t *testing.T) {
	// Cancellation arriving after the parent insert but before commit: the
	// transaction fails and nothing persists, parent row included.
	repo := newStubProductoRepo()
	svc := NewRegistroService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	repo.alCrearMateriales = cancel

	_, err := svc.Registrar(ctx, solicitudValida())
	require.Error(t, err)
	assert.NotEqual(t, apierror.KindValidation, apierror.KindOf(err))
	assert.NotEqual(t, apierror.KindDuplicate, apierror.KindOf(err))
	assert.Empty(t, repo.productos)
	assert.Empty(t, repo.materiales)
}

func TestRegistrarMaterialInexistente(t *testing.T) {
	// The FK on producto_materiales.material_id rejects unknown material ids;
	// the violation surfaces as a database error and rolls everything back.
	repo := newStubProductoRepo()
	repo.failCreateMateriales = &pgconn.PgError{Code: "23503", ConstraintName: "fk_producto_materiales_material"}
	svc := NewRegistroService(repo)

	_, err := svc.Registrar(context.Background(), solicitudValida())
	require.Error(t, err)
	assert.Equal(t, apierror.KindDatabase, apierror.KindOf(err))
	assert.Equal(t, "Error de base de datos", err.Error())
	assert.Empty(t, repo.productos)
	assert.Empty(t, repo.materiales)
}

func TestRegistrarErrorDeBaseDeDatos(t *testing.T) {
	repo := newStubProductoRepo()
	repo.failExistsCheck = true
	svc := NewRegistroService(repo)

	_, err := svc.Registrar(context.Background(), solicitudValida())
	require.Error(t, err)
	assert.Equal(t, apierror.KindDatabase, apierror.KindOf(err))
	assert.Equal(t, "Error de base de datos", err.Error())
	assert.Empty(t, repo.productos)
}

func TestRegistrarSucursalDeOtraBodega(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewRegistroService(repo)

	// Sucursal 5 belongs to bodega 4, not to the declared bodega 1.
	req := solicitudValida()
	sucursal := 5
	req.Sucursal = &sucursal

	_, err := svc.Registrar(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Equal(t, "La sucursal no pertenece a la bodega indicada", err.Error())
	assert.Empty(t, repo.productos)
}
