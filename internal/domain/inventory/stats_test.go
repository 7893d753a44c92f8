package inventory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	products := []Product{{StockQuantity: 10}, {StockQuantity: 2.5}, {StockQuantity: math.NaN()}}
	requests := []Request{
		{TransactionType: StockIn},
		{TransactionType: StockOut},
		{TransactionType: StockIn},
		{TransactionType: "other"},
	}

	s := ComputeStats(products, requests)
	assert.Equal(t, 3, s.TotalProducts)
	assert.InDelta(t, 12.5, s.TotalStockUnits, 1e-9)
	assert.Equal(t, 4, s.TotalRequests)
	assert.Equal(t, 2, s.StockIn)
	assert.Equal(t, 2, s.StockOut)
}

func TestDonut(t *testing.T) {
	assert.Nil(t, StockStats{}.Donut())

	segs := StockStats{StockIn: 3, StockOut: 1}.Donut()
	require.Len(t, segs, 2)
	assert.Equal(t, 75, segs[0].Percentage)
	assert.Equal(t, "75 25", segs[0].DashArray)
	assert.InDelta(t, 25, segs[0].DashOffset, 1e-9)
	assert.Equal(t, 25, segs[1].Percentage)
	assert.Equal(t, "25 75", segs[1].DashArray)
	assert.InDelta(t, -50, segs[1].DashOffset, 1e-9)

	onlyOut := StockStats{StockOut: 4}.Donut()
	require.Len(t, onlyOut, 2)
	assert.Equal(t, "0 100", onlyOut[0].DashArray)
	assert.Equal(t, 0, onlyOut[0].Percentage)
	assert.Equal(t, "100 0", onlyOut[1].DashArray)
	assert.InDelta(t, 25, onlyOut[1].DashOffset, 1e-9)
}
