package tryinvest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{USD(1234.5), "$1,234.50"},
		{USD(0), "$0.00"},
		{USD(-3.25), "-$3.25"},
		{USD(0.005), "$0.01"},
		{M(10, ""), "$10.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.m.String())
	}
	assert.Equal(t, "+$2.00", USD(2).SignedString())
	assert.Equal(t, "-$2.00", USD(-2).SignedString())
}

func TestMoney_Arithmetic(t *testing.T) {
	assertMoney(t, 260, USD(170).Add(USD(90)))
	assertMoney(t, 80, USD(170).Sub(USD(90)))
	assertMoney(t, 511.5, USD(170.5).Times(3))
	assertMoney(t, 0.3, USD(0.1).Add(USD(0.2)), "exact decimals")
	assert.True(t, M(1, "").Add(USD(1)).Equal(USD(2)))
	assert.Equal(t, "USD", M(1, "").Add(USD(1)).Currency())
	assert.Panics(t, func() { USD(1).Add(M(1, "EUR")) })
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(USD(105.3))
	require.NoError(t, err)
	assert.Equal(t, "105.3", string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`170.53`), &m))
	assertMoney(t, 170.53, m)
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, json.Unmarshal([]byte(`"12.5"`), &m))
	assertMoney(t, 12.5, m)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
}
