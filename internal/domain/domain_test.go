package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueProductTypes(t *testing.T) {
	products := []Product{
		{ID: "1", ProductType: "Mattress"},
		{ID: "2", ProductType: "Pillow"},
		{ID: "3", ProductType: "Mattress"},
		{ID: "4", ProductType: ""},
		{ID: "5", ProductType: "Pillow"},
	}

	assert.Equal(t, []string{"Mattress", "Pillow", ""}, UniqueProductTypes(products))
	assert.Equal(t, []string{}, UniqueProductTypes(nil))
}

func TestNewCatalog_JSON(t *testing.T) {
	b, err := json.Marshal(NewCatalog(nil, true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[],"productTypes":[]}`, string(b))
}

func TestOrder_Delivered(t *testing.T) {
	tests := []struct {
		name         string
		fulfillments []Fulfillment
		expected     bool
	}{
		{"no fulfillments", nil, false},
		{"in transit", []Fulfillment{{DisplayStatus: "IN_TRANSIT"}}, false},
		{"one of many delivered", []Fulfillment{{DisplayStatus: "IN_TRANSIT"}, {DisplayStatus: "DELIVERED"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Fulfillments: tt.fulfillments}
			assert.Equal(t, tt.expected, o.Delivered())
		})
	}
}
