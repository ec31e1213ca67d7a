package view

import (
	"testing"

	"github.com/fulldump/biff"
)

var orderMetrics = []MetricSpec{
	{Name: "total", Scope: ScopeAll, Kind: MetricCount},
	{Name: "pending", Scope: ScopeAll, Kind: MetricCount, Where: map[string]interface{}{"status": "pending"}},
	{Name: "revenue", Scope: ScopeAll, Kind: MetricSum, Field: "amount"},
	{Name: "filtered", Scope: ScopeFiltered, Kind: MetricCount},
	{Name: "filteredRevenue", Scope: ScopeFiltered, Kind: MetricSum, Field: "amount"},
	{Name: "filteredAvg", Scope: ScopeFiltered, Kind: MetricAvg, Field: "amount"},
	{Name: "filteredMin", Scope: ScopeFiltered, Kind: MetricMin, Field: "amount"},
	{Name: "filteredMax", Scope: ScopeFiltered, Kind: MetricMax, Field: "amount"},
}

func TestComputeStats(t *testing.T) {

	engine := NewEngine(ordersSchema)
	criteria := []Criterion{Categorical{Field: "status", Value: "pending"}}

	stats := engine.ComputeStats(newOrders(), criteria, orderMetrics)

	biff.AssertEqual(stats["total"], 23.0)
	biff.AssertEqual(stats["pending"], 9.0)
	biff.AssertEqual(stats["revenue"], 2760.0)
	biff.AssertEqual(stats["filtered"], 9.0)
	biff.AssertEqual(stats["filteredRevenue"], 950.0)
	biff.AssertEqual(stats["filteredAvg"], 950.0/9)
	biff.AssertEqual(stats["filteredMin"], 10.0)
	biff.AssertEqual(stats["filteredMax"], 210.0)
}

func TestComputeStats_Empty(t *testing.T) {

	engine := NewEngine(ordersSchema)

	stats := engine.ComputeStats(nil, nil, orderMetrics)
	for _, metric := range orderMetrics {
		biff.AssertEqual(stats[metric.Name], 0.0)
	}
}

func TestComputeStats_FilteredFollowsCriteria(t *testing.T) {

	engine := NewEngine(ordersSchema)
	orders := newOrders()

	all := engine.ComputeStats(orders, nil, orderMetrics)
	biff.AssertEqual(all["filtered"], all["total"])

	none := engine.ComputeStats(orders, []Criterion{Between("amount", 100, 50)}, orderMetrics)
	biff.AssertEqual(none["filtered"], 0.0)
	biff.AssertEqual(none["total"], 23.0)
}
