package dto

import "encoding/json"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Precio accepts a JSON number or a JSON string, as the form submits either.
// Numeric validation is deferred to the service so that a malformed value is
// reported with the business-rule message, not a decode error.
type Precio string

func (p *Precio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Precio(s)
		return nil
	}
	*p = Precio(b)
	return nil
}

// RegistrarProductoRequest is the submission body of POST /api/productos.
// Field order matters: presence failures are reported for the first missing
// field, top to bottom.
type RegistrarProductoRequest struct {
	Codigo      string `json:"codigo"      validate:"required"`
	Nombre      string `json:"nombre"      validate:"required"`
	Bodega      *int   `json:"bodega"      validate:"required"`
	Sucursal    *int   `json:"sucursal"    validate:"required"`
	Moneda      *int   `json:"moneda"      validate:"required"`
	Precio      Precio `json:"precio"      validate:"required"`
	Descripcion string `json:"descripcion" validate:"required"`
	Materiales  []int  `json:"materiales"  validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegistrarProductoResponse struct {
	OK                   bool   `json:"ok"`
	Message              string `json:"message"`
	IDProducto           int    `json:"idProducto"`
	Codigo               string `json:"codigo"`
	MaterialesInsertados int    `json:"materialesInsertados"`
}

// ErrorResponse is the failure envelope for the registration endpoint.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func NewError(msg string) ErrorResponse { return ErrorResponse{OK: false, Error: msg} }
