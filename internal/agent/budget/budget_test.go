package budget

import (
	"testing"

	"github.com/ff-agent/server/internal/agent/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCeiling(t *testing.T) {
	tests := []struct {
		value string
		want  float64
		ok    bool
	}{
		{"under $60", 60, true},
		{"$47.50", 47.5, true},
		{"60", 60, true},
		{"below 60", 60, true},
		{"3", 3, true},
		{"Under $19.99", 19.99, true},
		{"no budget", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCeiling(tt.value)
		assert.Equal(t, tt.ok, ok, "value %q", tt.value)
		if tt.ok {
			assert.Equal(t, tt.want, got, "value %q", tt.value)
		}
	}
}

func TestPriceAmount(t *testing.T) {
	amt, ok := PriceAmount("47.00 USD")
	require.True(t, ok)
	assert.Equal(t, 47.0, amt)

	_, ok = PriceAmount("")
	assert.False(t, ok)

	_, ok = PriceAmount("n/a USD")
	assert.False(t, ok)
}

func TestPartitionNoCeiling(t *testing.T) {
	products := []model.Product{
		{Title: "a", Price: "10.00 USD"},
		{Title: "b", Price: "90.00 USD"},
	}

	within, over := Partition(products, 0, false)
	assert.Equal(t, products, within)
	assert.Empty(t, over)
}

func TestPartitionIsTotal(t *testing.T) {
	products := []model.Product{
		{Title: "cheap", Price: "10.00 USD"},
		{Title: "unknown", Price: "soon"},
		{Title: "exact", Price: "60.00 USD"},
		{Title: "pricey", Price: "89.00 USD"},
	}

	within, over := Partition(products, 60, true)

	require.Len(t, within, 3)
	require.Len(t, over, 1)
	// order preserved inside each partition
	assert.Equal(t, "cheap", within[0].Title)
	assert.Equal(t, "unknown", within[1].Title)
	assert.Equal(t, "exact", within[2].Title)
	assert.Equal(t, "pricey", over[0].Title)
}

func TestPartitionUnknownPriceNotPenalized(t *testing.T) {
	within, over := Partition([]model.Product{{Title: "x", Price: ""}}, 1, true)
	assert.Len(t, within, 1)
	assert.Empty(t, over)
}
