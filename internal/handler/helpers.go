package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/rodrigovasdev/prueba-desis/internal/apierror"
	"github.com/rodrigovasdev/prueba-desis/internal/dto"
	"github.com/rodrigovasdev/prueba-desis/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

func init() {
	// Report field names as they appear on the wire (json tag), so that
	// validation messages name 'codigo', not 'Codigo'.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindAndValidate binds the JSON body and runs the required-field tags.
// Presence failures are reported one at a time, first field wins, matching
// the service's own ordering. Returns false if a response was already written.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError("No se pudieron obtener los datos JSON"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.JSON(http.StatusBadRequest, dto.NewError("El campo '"+verrs[0].Field()+"' es requerido"))
			return false
		}
		c.JSON(http.StatusBadRequest, dto.NewError("Error de validación"))
		return false
	}
	return true
}

// writeError maps a service error to its HTTP status and envelope. Messages
// carried by apierror are safe for end users; 5xx causes are logged with the
// request id and never leaked.
func writeError(c *gin.Context, err error) {
	kind := apierror.KindOf(err)
	status := apierror.Status(kind)
	if status >= http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Err(err).
			Msg("error de servidor")
	}
	c.JSON(status, dto.NewError(err.Error()))
}
