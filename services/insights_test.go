package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-insights/models"
)

func allTraffic() models.Filter {
	return models.Filter{
		Cutoff:  date(1, 4),
		Traffic: models.TrafficDensities,
		Weather: models.Weathers,
	}
}

func tableNames(tables []models.Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}

func TestCompanyIgnoresWeatherFilter(t *testing.T) {
	foggy := order("c1", "Urban", models.TrafficJam, 20)
	foggy.Weather = models.WeatherFog
	records := []*models.CleanRecord{foggy, order("c2", "Urban", models.TrafficLow, 25)}

	f := allTraffic()
	f.Weather = []models.Weather{models.WeatherSunny}
	svc := NewInsightService(newTestLogger(), 0)

	report := svc.Company(records, f)
	require.Len(t, report.OrdersPerDay, 1)
	assert.Equal(t, 2, report.OrdersPerDay[0].Count)
	assert.Len(t, f.Weather, 1, "caller's filter must not be modified")

	assert.Equal(t, []string{
		"orders_per_day", "traffic_share", "traffic_by_city",
		"orders_per_week", "orders_per_courier_week", "map_markers",
	}, tableNames(report.Tables()))
}

func TestCouriersReport(t *testing.T) {
	young := order("c1", "Urban", models.TrafficJam, 20)
	young.Age.Int64 = 21
	young.VehicleCondition = 0
	old := order("c2", "Urban", models.TrafficJam, 30)
	old.Age.Int64 = 39
	old.VehicleCondition = 2
	records := []*models.CleanRecord{young, old}

	report := NewInsightService(newTestLogger(), 1).Couriers(records, allTraffic())
	assert.Equal(t, int64(21), report.MinAge.Int64)
	assert.Equal(t, int64(39), report.MaxAge.Int64)
	assert.Equal(t, int64(2), report.BestVehicleCond.Int64)
	assert.Equal(t, int64(0), report.WorstVehicleCond.Int64)
	require.Len(t, report.FastestCouriers, 1)
	assert.Equal(t, "c1", report.FastestCouriers[0].DeliveryPersonID)
	require.Len(t, report.SlowestCouriers, 1)
	assert.Equal(t, "c2", report.SlowestCouriers[0].DeliveryPersonID)

	tables := report.Tables()
	assert.Equal(t, []string{
		"courier_overall", "rating_by_courier", "rating_by_traffic",
		"rating_by_weather", "fastest_couriers", "slowest_couriers",
	}, tableNames(tables))
	assert.Equal(t, []string{"21", "39", "2", "0"}, tables[0].Rows[0])
}

func TestRestaurantsReportWithNoMatches(t *testing.T) {
	records := []*models.CleanRecord{order("c1", "Urban", models.TrafficJam, 20)}
	f := allTraffic()
	f.Weather = []models.Weather{}

	report := NewInsightService(newTestLogger(), 0).Restaurants(records, f)
	assert.Equal(t, 0, report.UniqueCouriers)
	assert.False(t, report.MeanDistanceKm.Valid)

	tables := report.Tables()
	assert.Equal(t, []string{
		"restaurant_overall", "time_by_city", "time_by_city_vehicle",
		"time_by_city_order_type", "time_by_city_traffic", "distance_by_city",
	}, tableNames(tables))
	assert.Equal(t, []string{"0", models.NoData, models.NoData, models.NoData, models.NoData, models.NoData}, tables[0].Rows[0])
	assert.Empty(t, tables[1].Rows)
}

func TestPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 0)
	tables := []models.Table{
		{Name: "traffic_share", Header: []string{"traffic", "orders"}, Rows: [][]string{{"Jam", "3"}}},
		{Name: "orders_per_week", Header: []string{"week", "orders"}},
	}

	var buf bytes.Buffer
	svc.Print(&buf, "company", tables)
	out := buf.String()

	assert.Contains(t, out, "CURY COMPANY · COMPANY")
	assert.Contains(t, out, "traffic_share")
	assert.Contains(t, out, "Jam")
	assert.Contains(t, out, "orders_per_week: no data")
}
