package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSaleRequestValid(t *testing.T) {
	err := ValidateSaleRequest(SaleRequest{Items: []SaleLine{
		{ItemCode: "P001", Quantity: 1},
		{ItemCode: "P002", Quantity: 10},
	}})
	assert.NoError(t, err)
}

func TestValidateSaleRequestEmpty(t *testing.T) {
	err := ValidateSaleRequest(SaleRequest{})
	require.Error(t, err)

	var fields ValidationErrors
	require.True(t, errors.As(err, &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, "items", fields[0].Field)
}

func TestValidateSaleRequestBadLines(t *testing.T) {
	err := ValidateSaleRequest(SaleRequest{Items: []SaleLine{
		{ItemCode: "", Quantity: 5},
		{ItemCode: "P001", Quantity: 0},
	}})
	require.Error(t, err)

	var fields ValidationErrors
	require.True(t, errors.As(err, &fields))
	assert.Len(t, fields, 2)

	seen := map[string]string{}
	for _, fe := range fields {
		seen[fe.Field] = fe.Message
	}
	assert.Contains(t, seen, "ItemCode")
	assert.Contains(t, seen, "Quantity")
}
