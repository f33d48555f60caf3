package handler

import (
	"net/http"

	"github.com/rodrigovasdev/prueba-desis/internal/apierror"
	"github.com/rodrigovasdev/prueba-desis/internal/dto"
	"github.com/rodrigovasdev/prueba-desis/internal/middleware"
	"github.com/rodrigovasdev/prueba-desis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type LookupsHandler struct{ svc service.LookupService }

func NewLookupsHandler(svc service.LookupService) *LookupsHandler {
	return &LookupsHandler{svc: svc}
}

// Bodegas handles GET /api/bodegas.
func (h *LookupsHandler) Bodegas(c *gin.Context) {
	items, err := h.svc.Bodegas(c.Request.Context())
	if err != nil {
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList("Bodegas obtenidas correctamente", items, len(items)))
}

// Sucursales handles GET /api/sucursales?bodega=<nombre>. The filter is by
// warehouse name and is echoed back in the envelope.
func (h *LookupsHandler) Sucursales(c *gin.Context) {
	nombreBodega := c.Query("bodega")
	if nombreBodega == "" {
		c.JSON(http.StatusBadRequest, dto.NewListError("Debe proporcionar el nombre de la bodega"))
		return
	}

	items, err := h.svc.Sucursales(c.Request.Context(), nombreBodega)
	if err != nil {
		writeLookupError(c, err)
		return
	}

	mensaje := "Sucursales obtenidas correctamente"
	if len(items) == 0 {
		mensaje = "No se encontraron sucursales para la bodega especificada"
	}
	resp := dto.NewList(mensaje, items, len(items))
	resp.Bodega = nombreBodega
	c.JSON(http.StatusOK, resp)
}

// Monedas handles GET /api/monedas.
func (h *LookupsHandler) Monedas(c *gin.Context) {
	items, err := h.svc.Monedas(c.Request.Context())
	if err != nil {
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList("Monedas obtenidas correctamente", items, len(items)))
}

// Materiales handles GET /api/materiales.
func (h *LookupsHandler) Materiales(c *gin.Context) {
	items, err := h.svc.Materiales(c.Request.Context())
	if err != nil {
		writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList("Materiales obtenidos correctamente", items, len(items)))
}

// writeLookupError: connectivity failures surface as a generic
// service-unavailable message inside the lookup envelope.
func writeLookupError(c *gin.Context, err error) {
	log.Error().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("consulta de referencia fallida")
	c.JSON(apierror.Status(apierror.KindOf(err)), dto.NewListError(err.Error()))
}
