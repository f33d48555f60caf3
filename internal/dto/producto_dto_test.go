package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// precio arrives either as a JSON string or a JSON number; both must land as
// the same raw text, and null must read as absent.
func TestPrecioAceptaNumeroYTexto(t *testing.T) {
	var req RegistrarProductoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"precio": "19.99"}`), &req))
	assert.Equal(t, Precio("19.99"), req.Precio)

	req = RegistrarProductoRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"precio": 19.99}`), &req))
	assert.Equal(t, Precio("19.99"), req.Precio)

	req = RegistrarProductoRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"precio": null}`), &req))
	assert.Equal(t, Precio(""), req.Precio)
}
