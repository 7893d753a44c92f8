package inventory

import (
	"fmt"
	"math"
)

// StockStats summarises products and requests for the dashboard.
type StockStats struct {
	TotalProducts   int
	TotalStockUnits float64
	TotalRequests   int
	StockIn         int
	StockOut        int
}

// ComputeStats sums stock units over finite quantities and splits requests by type.
// Anything that is not stock-in counts as stock-out.
func ComputeStats(products []Product, requests []Request) StockStats {
	var units float64
	for _, p := range products {
		if !math.IsNaN(p.StockQuantity) && !math.IsInf(p.StockQuantity, 0) {
			units += p.StockQuantity
		}
	}
	in := CountStockIn(requests)
	return StockStats{
		TotalProducts:   len(products),
		TotalStockUnits: units,
		TotalRequests:   len(requests),
		StockIn:         in,
		StockOut:        len(requests) - in,
	}
}

// DonutSegment is one arc of the request mix chart. DashArray and DashOffset are
// SVG stroke values on a circle with circumference 100.
type DonutSegment struct {
	ID         string
	Label      string
	Value      int
	Color      string
	Percentage int
	DashArray  string
	DashOffset float64
}

// Donut builds the stock-in/stock-out chart. It is empty when there are no requests.
func (s StockStats) Donut() []DonutSegment {
	segments := []DonutSegment{
		{ID: "stockIn", Label: "Stock In", Value: s.StockIn, Color: "#34D399"},
		{ID: "stockOut", Label: "Stock Out", Value: s.StockOut, Color: "#F97316"},
	}
	total := 0
	for _, seg := range segments {
		total += seg.Value
	}
	if total == 0 {
		return nil
	}

	cumulative := 0.0
	for i := range segments {
		seg := &segments[i]
		if seg.Value <= 0 {
			seg.DashArray = "0 100"
			seg.DashOffset = 25 - cumulative
			continue
		}
		pct := float64(seg.Value) / float64(total) * 100
		seg.Percentage = int(math.Round(pct))
		seg.DashArray = fmt.Sprintf("%s %s", FormatNumber(pct), FormatNumber(100-pct))
		seg.DashOffset = 25 - cumulative
		cumulative += pct
	}
	return segments
}
