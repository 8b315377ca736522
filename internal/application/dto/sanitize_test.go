package dto_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain"
)

func TestClean_NormalizaYRecorta(t *testing.T) {
	// "i" + acento combinante → "í" precompuesta (NFC)
	assert.Equal(t, "Placa de v\u00eddeo", dto.Clean("  Placa de vi\u0301deo\x00 "))
}

func TestRequired(t *testing.T) {
	v := "   "
	assert.ErrorIs(t, dto.Required("nombre", &v, dto.MaxNameLen), domain.ErrInvalidInput)

	v = strings.Repeat("ç", dto.MaxNameLen)
	assert.NoError(t, dto.Required("nombre", &v, dto.MaxNameLen), "cuenta runas, no bytes")

	v = strings.Repeat("a", dto.MaxNameLen+1)
	assert.ErrorIs(t, dto.Required("nombre", &v, dto.MaxNameLen), domain.ErrInvalidInput)
}

func TestEmail(t *testing.T) {
	v := " Ana@Pecas.COM "
	require.NoError(t, dto.Email("email", &v, true))
	assert.Equal(t, "ana@pecas.com", v)

	for _, bad := range []string{"ana", "@pecas.com", "ana@", "ana@pecas", "ana pecas@x.com"} {
		b := bad
		assert.ErrorIs(t, dto.Email("email", &b, true), domain.ErrInvalidInput, bad)
	}

	empty := ""
	assert.NoError(t, dto.Email("email", &empty, false))
	assert.ErrorIs(t, dto.Email("email", &empty, true), domain.ErrInvalidInput)
}

func TestParseDate(t *testing.T) {
	d, err := dto.ParseDate("from", "2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Day())

	end := dto.EndOfDay(d)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 1, end.Day())

	d, err = dto.ParseDate("from", "")
	assert.NoError(t, err)
	assert.Nil(t, d)

	_, err = dto.ParseDate("from", "01/03/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMoney(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"0", true},
		{"10.5", true},
		{"0.33", true},
		{"0.330", true},
		{"-12.34", true},
		{"9999999999.99", true},
		{"0.335", false},
		{"1.001", false},
		{"10000000000", false},
		{"-10000000000.00", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			err := dto.Money("precio", decimal.RequireFromString(tc.in))
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
