package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItems_Sum(t *testing.T) {
	items := LineItems{
		{Description: "Labor", Quantity: 16, Unit: "h", UnitPrice: 55, Total: 880},
		{Description: "Travel", Quantity: 120, Unit: "km", UnitPrice: 0.5, Total: 60},
	}

	assert.Equal(t, 940.0, items.Sum())
	assert.Equal(t, 0.0, LineItems{}.Sum())
}

func TestLineItems_ValueScanRoundtrip(t *testing.T) {
	items := LineItems{
		{Description: "Labor", Quantity: 8, Unit: "h", UnitPrice: 60, Total: 480},
	}

	value, err := items.Value()
	require.NoError(t, err)

	bytes, ok := value.([]byte)
	require.True(t, ok)

	var decoded LineItems
	require.NoError(t, decoded.Scan(bytes))
	assert.Equal(t, items, decoded)
}

func TestLineItems_ValueNil(t *testing.T) {
	var items LineItems

	value, err := items.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestLineItems_ScanNil(t *testing.T) {
	var items LineItems

	require.NoError(t, items.Scan(nil))
	assert.Nil(t, items)
}

func TestLineItems_ScanInvalidType(t *testing.T) {
	var items LineItems

	assert.Error(t, items.Scan(42))
}
