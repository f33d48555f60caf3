package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rodrigovasdev/prueba-desis/internal/apierror"
	"github.com/rodrigovasdev/prueba-desis/internal/dto"
	"github.com/rodrigovasdev/prueba-desis/internal/model"
	"github.com/rodrigovasdev/prueba-desis/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgCodigoDuplicado = "El código del producto ya está registrado"
	msgErrorBD         = "Error de base de datos"
	msgErrorInterno    = "Error interno del servidor"
)

// codigoRe: solo letras y números. Largo y composición se validan aparte para
// reportar un único mensaje.
var codigoRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// RegistroService is the product registration procedure: validate the
// submission, then perform the atomic multi-row write.
type RegistroService interface {
	Registrar(ctx context.Context, req dto.RegistrarProductoRequest) (*dto.RegistrarProductoResponse, error)
}

type registroService struct {
	repo repository.ProductoRepository
}

func NewRegistroService(repo repository.ProductoRepository) RegistroService {
	return &registroService{repo: repo}
}

// Registrar validates the submission and, inside one transaction: checks the
// code for duplicates, verifies the sucursal belongs to the declared bodega,
// inserts the producto and its material associations. Any failure after the
// transaction opens rolls everything back — a partially associated product is
// never observable.
func (s *registroService) Registrar(ctx context.Context, req dto.RegistrarProductoRequest) (*dto.RegistrarProductoResponse, error) {
	precio, verr := validar(req)
	if verr != nil {
		return nil, verr
	}

	producto := model.Producto{
		Codigo:      strings.TrimSpace(req.Codigo),
		Nombre:      strings.TrimSpace(req.Nombre),
		Precio:      precio,
		Descripcion: strings.TrimSpace(req.Descripcion),
		BodegaID:    *req.Bodega,
		SucursalID:  *req.Sucursal,
		MonedaID:    *req.Moneda,
	}

	err := s.repo.Transact(ctx, func(tx *gorm.DB) error {
		existe, err := s.repo.ExistsByCodigoTx(tx, producto.Codigo)
		if err != nil {
			return apierror.Database(msgErrorBD, err)
		}
		if existe {
			return apierror.Duplicate(msgCodigoDuplicado)
		}

		pertenece, err := s.repo.SucursalEnBodegaTx(tx, producto.SucursalID, producto.BodegaID)
		if err != nil {
			return apierror.Database(msgErrorBD, err)
		}
		if !pertenece {
			return apierror.Validation("La sucursal no pertenece a la bodega indicada")
		}

		if err := s.repo.CreateTx(tx, &producto); err != nil {
			// Two concurrent submissions can both pass the pre-check; the
			// unique index on UPPER(codigo) is the authoritative signal.
			if esViolacionUnicidad(err) {
				return apierror.Duplicate(msgCodigoDuplicado)
			}
			return apierror.Database(msgErrorBD, err)
		}

		if err := s.repo.CreateMaterialesTx(tx, producto.ID, req.Materiales); err != nil {
			return apierror.Database(msgErrorBD, err)
		}
		return nil
	})
	if err != nil {
		var aerr *apierror.Error
		if !errors.As(err, &aerr) {
			aerr = apierror.Internal(msgErrorInterno, err)
		}
		if aerr.Kind == apierror.KindDatabase || aerr.Kind == apierror.KindInternal {
			log.Error().Err(aerr.Unwrap()).Str("codigo", producto.Codigo).Msg("registro de producto fallido")
		}
		return nil, aerr
	}

	log.Info().
		Int("id_producto", producto.ID).
		Str("codigo", producto.Codigo).
		Int("materiales", len(req.Materiales)).
		Msg("producto registrado")

	return &dto.RegistrarProductoResponse{
		OK:                   true,
		Message:              "Producto guardado exitosamente",
		IDProducto:           producto.ID,
		Codigo:               producto.Codigo,
		MaterialesInsertados: len(req.Materiales),
	}, nil
}

// validar applies the submission rules in order, first violation wins.
// Returns the parsed price on success.
func validar(req dto.RegistrarProductoRequest) (decimal.Decimal, *apierror.Error) {
	requeridos := []struct {
		campo string
		falta bool
	}{
		{"codigo", strings.TrimSpace(req.Codigo) == ""},
		{"nombre", strings.TrimSpace(req.Nombre) == ""},
		{"bodega", req.Bodega == nil},
		{"sucursal", req.Sucursal == nil},
		{"moneda", req.Moneda == nil},
		{"precio", strings.TrimSpace(string(req.Precio)) == ""},
		{"descripcion", strings.TrimSpace(req.Descripcion) == ""},
		{"materiales", req.Materiales == nil},
	}
	for _, r := range requeridos {
		if r.falta {
			return decimal.Zero, apierror.Validation("El campo '" + r.campo + "' es requerido")
		}
	}

	if len(req.Materiales) < 2 {
		return decimal.Zero, apierror.Validation("Debe seleccionar al menos 2 materiales")
	}
	vistos := make(map[int]struct{}, len(req.Materiales))
	for _, id := range req.Materiales {
		if _, repetido := vistos[id]; repetido {
			return decimal.Zero, apierror.Validation("Debe seleccionar al menos 2 materiales distintos")
		}
		vistos[id] = struct{}{}
	}

	precio, err := decimal.NewFromString(strings.TrimSpace(string(req.Precio)))
	if err != nil || !precio.IsPositive() {
		return decimal.Zero, apierror.Validation("El precio debe ser un número positivo")
	}
	if precio.Exponent() < -2 {
		return decimal.Zero, apierror.Validation("El precio debe ser un número positivo con hasta dos decimales")
	}

	codigo := strings.TrimSpace(req.Codigo)
	if len(codigo) < 5 || len(codigo) > 15 || !codigoRe.MatchString(codigo) ||
		!strings.ContainsAny(codigo, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ") ||
		!strings.ContainsAny(codigo, "0123456789") {
		return decimal.Zero, apierror.Validation("El código debe tener entre 5 y 15 caracteres alfanuméricos, con al menos una letra y un número")
	}

	if n := len([]rune(strings.TrimSpace(req.Nombre))); n < 2 || n > 50 {
		return decimal.Zero, apierror.Validation("El nombre debe tener entre 2 y 50 caracteres")
	}
	if n := len([]rune(strings.TrimSpace(req.Descripcion))); n < 10 || n > 1000 {
		return decimal.Zero, apierror.Validation("La descripción debe tener entre 10 y 1000 caracteres")
	}

	return precio, nil
}

// esViolacionUnicidad reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func esViolacionUnicidad(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
