package handler

import (
	"net/http"

	"github.com/rodrigovasdev/prueba-desis/internal/dto"
	"github.com/rodrigovasdev/prueba-desis/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.RegistroService }

func NewProductosHandler(svc service.RegistroService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Registrar handles POST /api/productos.
func (h *ProductosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
