package lib

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dewode_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// A giveaway item is legitimate: zero is a valid price.
func TestProductInputAcceptsZeroPrice(t *testing.T) {
	body := `{"name":"SAMPLE COASTER","price":0,"image":"https://cdn.dew-ode.com/c.jpg","stock":5}`

	input, err := ExtractAndValidateBody[structs.ProductInput](jsonRequest(t, body))
	require.NoError(t, err)
	assert.Equal(t, int64(0), input.Price)
}

func TestProductInputRejectsNegativePrice(t *testing.T) {
	body := `{"name":"BROKEN","price":-100,"image":"https://cdn.dew-ode.com/c.jpg","stock":5}`

	_, err := ExtractAndValidateBody[structs.ProductInput](jsonRequest(t, body))
	assert.Error(t, err)
}
