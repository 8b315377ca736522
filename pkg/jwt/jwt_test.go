package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("secreto", 42, "admin", "pecas-api", 5)
	require.NoError(t, err)

	id, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "admin", role)
}

func TestParse_Rechaza(t *testing.T) {
	token, err := Generate("secreto", 1, "seller", "pecas-api", 5)
	require.NoError(t, err)
	expired, err := Generate("secreto", 1, "seller", "pecas-api", -1)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")
	_, _, err = Parse("secreto", expired)
	assert.Error(t, err, "expirado")
	_, _, err = Parse("secreto", "no.es.token")
	assert.Error(t, err)
	_, _, err = Parse("", token)
	assert.Error(t, err)

	_, err = Generate("", 1, "seller", "x", 5)
	assert.Error(t, err)
}
