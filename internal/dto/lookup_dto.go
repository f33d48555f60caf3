package dto

// ─── Lookup items ────────────────────────────────────────────────────────────

type BodegaItem struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type SucursalItem struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	BodegaID     int    `json:"bodegaId"`
	NombreBodega string `json:"nombreBodega"`
}

type MonedaItem struct {
	ID     int    `json:"id"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

type MaterialItem struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// ─── Envelope ────────────────────────────────────────────────────────────────

// ListResponse is the envelope shared by every lookup endpoint. Bodega is the
// filter echo used only by the sucursales listing.
type ListResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Bodega  string      `json:"bodega,omitempty"`
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
}

func NewList(message string, data interface{}, total int) ListResponse {
	return ListResponse{Success: true, Message: message, Data: data, Total: total}
}

func NewListError(message string) ListResponse {
	return ListResponse{Success: false, Message: message}
}
