package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("campo requerido")))
	assert.Equal(t, KindDuplicate, KindOf(Duplicate("codigo duplicado")))
	assert.Equal(t, KindDatabase, KindOf(Database("error de base de datos", errors.New("boom"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("cualquier otro error")))
}

func TestKindOfEnvuelto(t *testing.T) {
	// Kind survives wrapping with %w.
	err := fmt.Errorf("registrando producto: %w", Duplicate("codigo duplicado"))
	assert.Equal(t, KindDuplicate, KindOf(err))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(KindValidation))
	assert.Equal(t, http.StatusBadRequest, Status(KindDuplicate))
	assert.Equal(t, http.StatusInternalServerError, Status(KindDatabase))
	assert.Equal(t, http.StatusInternalServerError, Status(KindInternal))
}

func TestUnwrapPreservaCausa(t *testing.T) {
	causa := errors.New("dial tcp: connection refused")
	err := Database("Error de base de datos", causa)
	assert.ErrorIs(t, err, causa)
	assert.Equal(t, "Error de base de datos", err.Error())
}
