package services

import (
	"database/sql"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-insights/models"
)

func TestOrdersPerDaySortsByDate(t *testing.T) {
	a := order("c1", "Urban", models.TrafficJam, 20)
	a.OrderDate = date(13, 2)
	b := order("c2", "Urban", models.TrafficJam, 20)
	b.OrderDate = date(11, 2)
	c := order("c3", "Urban", models.TrafficLow, 20)
	c.OrderDate = date(13, 2)

	days := OrdersPerDay([]*models.CleanRecord{a, b, c})

	require.Len(t, days, 2)
	assert.Equal(t, "11-02-2022", days[0].Label())
	assert.Equal(t, 1, days[0].Count)
	assert.Equal(t, "13-02-2022", days[1].Label())
	assert.Equal(t, 2, days[1].Count)
}

func TestTrafficShareAndByCity(t *testing.T) {
	records := []*models.CleanRecord{
		order("c1", "Urban", models.TrafficJam, 20),
		order("c2", "Urban", models.TrafficJam, 20),
		order("c3", "Metropolitian", models.TrafficLow, 20),
		order("c4", "Semi-Urban", models.TrafficJam, 20),
	}

	share := TrafficShare(records)
	require.Len(t, share, 2)
	assert.Equal(t, models.TrafficJam, share[0].Traffic)
	assert.Equal(t, 3, share[0].Count)
	assert.InDelta(t, 75.0, share[0].Percent, 1e-9)
	assert.InDelta(t, 25.0, share[1].Percent, 1e-9)

	byCity := TrafficByCity(records)
	require.Len(t, byCity, 3)
	assert.Equal(t, models.CityTrafficCount{City: "Metropolitian", Traffic: models.TrafficLow, Count: 1}, byCity[0])
	assert.Equal(t, models.CityTrafficCount{City: "Semi-Urban", Traffic: models.TrafficJam, Count: 1}, byCity[1])
	assert.Equal(t, models.CityTrafficCount{City: "Urban", Traffic: models.TrafficJam, Count: 2}, byCity[2])
}

func TestWeekOfYearIsSundayBased(t *testing.T) {
	tests := []struct {
		day  time.Time
		want string
	}{
		{time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), "00"},
		{time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), "01"},
		{date(11, 2), "06"},
		{date(12, 2), "06"},
		{date(13, 2), "07"},
		{date(13, 3), "11"},
		{time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), "52"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekOfYear(tt.day), "WeekOfYear(%s)", tt.day.Format(models.DateLayout))
	}
}

func TestOrdersPerWeekAndCourierRatio(t *testing.T) {
	var records []*models.CleanRecord
	for i := 0; i < 10; i++ {
		r := order(fmt.Sprintf("c%d", i%5), "Urban", models.TrafficJam, 20)
		r.OrderDate = date(11, 2)
		records = append(records, r)
	}
	later := order("c9", "Urban", models.TrafficJam, 20)
	later.OrderDate = date(14, 2)
	records = append(records, later)

	weeks := OrdersPerWeek(records)
	require.Len(t, weeks, 2)
	assert.Equal(t, models.WeekCount{Week: "06", Count: 10}, weeks[0])
	assert.Equal(t, models.WeekCount{Week: "07", Count: 1}, weeks[1])

	ratios := OrdersPerCourierByWeek(records)
	require.Len(t, ratios, 2)
	assert.Equal(t, 10, ratios[0].Orders)
	assert.Equal(t, 5, ratios[0].Couriers)
	assert.Equal(t, 2.0, ratios[0].Ratio)
	assert.Equal(t, 1.0, ratios[1].Ratio)
}

func TestMedianLocations(t *testing.T) {
	lats := []float64{10, 30, 20, 40}
	var records []*models.CleanRecord
	for i, lat := range lats {
		r := order(fmt.Sprintf("c%d", i), "Urban", models.TrafficJam, 20)
		r.DeliveryLocationLatitude = lat
		r.DeliveryLocationLongitude = lat + 1
		records = append(records, r)
	}
	odd := order("c9", "Urban", models.TrafficLow, 20)
	odd.DeliveryLocationLatitude = 5
	records = append(records, odd)

	markers := MedianLocations(records)
	require.Len(t, markers, 2)
	assert.Equal(t, models.TrafficJam, markers[0].Traffic)
	assert.Equal(t, 25.0, markers[0].Latitude)
	assert.Equal(t, 26.0, markers[0].Longitude)
	assert.Equal(t, "Urban / Jam", markers[0].Label())
	assert.Equal(t, 5.0, markers[1].Latitude)
}

func TestRatingAggregations(t *testing.T) {
	rate := func(courier string, traffic models.TrafficDensity, rating float64, valid bool) *models.CleanRecord {
		r := order(courier, "Urban", traffic, 20)
		r.Rating = sql.NullFloat64{Float64: rating, Valid: valid}
		return r
	}
	records := []*models.CleanRecord{
		rate("a", models.TrafficLow, 4.0, true),
		rate("a", models.TrafficLow, 5.0, true),
		rate("b", models.TrafficHigh, 4.9, true),
		rate("c", models.TrafficJam, 0, false),
		rate("c", models.TrafficJam, 0, false),
	}

	byCourier := RatingByCourier(records)
	require.Len(t, byCourier, 3)
	assert.Equal(t, "b", byCourier[0].DeliveryPersonID)
	assert.Equal(t, "a", byCourier[1].DeliveryPersonID)
	assert.InDelta(t, 4.5, byCourier[1].Mean.Float64, 1e-9)
	assert.Equal(t, "c", byCourier[2].DeliveryPersonID)
	assert.False(t, byCourier[2].Mean.Valid, "all-null ratings must yield no data")

	byTraffic := RatingByTraffic(records)
	require.Len(t, byTraffic, 3)
	assert.Equal(t, []string{"High"}, byTraffic[0].Keys)
	assert.True(t, byTraffic[0].Stats.Mean.Valid)
	assert.False(t, byTraffic[0].Stats.Std.Valid, "std of a single rating is undefined")
	assert.Equal(t, []string{"Jam"}, byTraffic[1].Keys)
	assert.False(t, byTraffic[1].Stats.Mean.Valid)
	assert.False(t, byTraffic[1].Stats.Std.Valid)
	assert.InDelta(t, math.Sqrt(0.5), byTraffic[2].Stats.Std.Float64, 1e-9)

	byWeather := RatingByWeather(records)
	require.Len(t, byWeather, 1)
	assert.Equal(t, 3, byWeather[0].Stats.Count)
}

func TestSampleStandardDeviation(t *testing.T) {
	s := computeStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean.Float64, 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.Std.Float64, 1e-9)

	empty := computeStats(nil)
	assert.False(t, empty.Mean.Valid)
	assert.False(t, empty.Std.Valid)
}

func TestTopCouriers(t *testing.T) {
	var records []*models.CleanRecord
	for i := 0; i < 15; i++ {
		courier := fmt.Sprintf("URB%02d", i)
		// Two orders per courier; mean time is 40 - i.
		records = append(records,
			order(courier, "Urban", models.TrafficJam, 39-i),
			order(courier, "Urban", models.TrafficJam, 41-i))
	}
	records = append(records, order("MET01", "Metropolitian", models.TrafficLow, 12))

	fastest := TopCouriers(records, DefaultTopK, true)
	require.Len(t, fastest, 11)
	assert.Equal(t, "Metropolitian", fastest[0].City)

	urban := fastest[1:]
	require.Len(t, urban, 10)
	for i := 1; i < len(urban); i++ {
		assert.LessOrEqual(t, urban[i-1].MeanTimeTaken, urban[i].MeanTimeTaken)
	}
	included := make(map[string]bool)
	maxIncluded := 0.0
	for _, c := range urban {
		included[c.DeliveryPersonID] = true
		maxIncluded = math.Max(maxIncluded, c.MeanTimeTaken)
	}
	for i := 0; i < 15; i++ {
		courier := fmt.Sprintf("URB%02d", i)
		if !included[courier] {
			assert.GreaterOrEqual(t, float64(40-i), maxIncluded, "excluded %s is faster than an included courier", courier)
		}
	}
	assert.Equal(t, "URB14", urban[0].DeliveryPersonID)
	assert.Equal(t, 26.0, urban[0].MeanTimeTaken)

	slowest := TopCouriers(records, DefaultTopK, false)
	require.Len(t, slowest, 11)
	assert.Equal(t, "URB00", slowest[1].DeliveryPersonID)
	assert.Equal(t, 40.0, slowest[1].MeanTimeTaken)
	for i := 2; i < len(slowest); i++ {
		assert.GreaterOrEqual(t, slowest[i-1].MeanTimeTaken, slowest[i].MeanTimeTaken)
	}
}

func TestTopCouriersTiesKeepCourierOrder(t *testing.T) {
	records := []*models.CleanRecord{
		order("c3", "Urban", models.TrafficJam, 20),
		order("c1", "Urban", models.TrafficJam, 20),
		order("c2", "Urban", models.TrafficJam, 20),
	}

	got := TopCouriers(records, 2, true)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].DeliveryPersonID)
	assert.Equal(t, "c2", got[1].DeliveryPersonID)
}

func TestHaversine(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(22.745049, 75.892471, 22.745049, 75.892471))
	assert.InDelta(t, 111.19508, Haversine(0, 0, 0, 1), 1e-4)

	ab := Haversine(12.9716, 77.5946, 19.0760, 72.8777)
	ba := Haversine(19.0760, 72.8777, 12.9716, 77.5946)
	assert.Equal(t, ab, ba)
	assert.InDelta(t, 845, ab, 5)

	antipodal := Haversine(45, 0, -45, 180)
	assert.False(t, math.IsNaN(antipodal))
	assert.InDelta(t, math.Pi*EarthRadiusKm, antipodal, 1e-3)
}

func TestDistanceViews(t *testing.T) {
	same := order("c1", "Urban", models.TrafficJam, 20)
	same.DeliveryLocationLatitude = same.RestaurantLatitude
	same.DeliveryLocationLongitude = same.RestaurantLongitude
	far := order("c2", "Urban", models.TrafficJam, 20)
	far.RestaurantLatitude, far.RestaurantLongitude = 0, 0
	far.DeliveryLocationLatitude, far.DeliveryLocationLongitude = 0, 1
	records := []*models.CleanRecord{same, far}

	perOrder := OrderDistances(records)
	require.Len(t, perOrder, 2)
	assert.Equal(t, 0.0, perOrder[0].DistanceKm)

	m := MeanDistance(records)
	require.True(t, m.Valid)
	assert.InDelta(t, 111.19508/2, m.Float64, 1e-4)

	byCity := DistanceByCity(records)
	require.Len(t, byCity, 1)
	assert.InDelta(t, m.Float64, byCity[0].MeanDistanceKm, 1e-9)
}

func TestTimeStatistics(t *testing.T) {
	a := order("c1", "Urban", models.TrafficJam, 20)
	b := order("c2", "Urban", models.TrafficJam, 30)
	b.TypeOfVehicle = "scooter"
	b.Festival = true
	c := order("c3", "Metropolitian", models.TrafficLow, 40)
	c.TypeOfOrder = "Meal"
	c.Festival = true
	records := []*models.CleanRecord{a, b, c}

	byCity := TimeByCity(records)
	require.Len(t, byCity, 2)
	assert.Equal(t, []string{"Metropolitian"}, byCity[0].Keys)
	assert.Equal(t, []string{"Urban"}, byCity[1].Keys)
	assert.InDelta(t, 25.0, byCity[1].Stats.Mean.Float64, 1e-9)
	assert.InDelta(t, math.Sqrt(50), byCity[1].Stats.Std.Float64, 1e-9)

	byVehicle := TimeByCityVehicle(records)
	require.Len(t, byVehicle, 3)
	assert.Equal(t, []string{"Urban", "motorcycle"}, byVehicle[1].Keys)
	assert.Equal(t, []string{"Urban", "scooter"}, byVehicle[2].Keys)

	byOrder := TimeByCityOrderType(records)
	require.Len(t, byOrder, 2)
	assert.Equal(t, []string{"Metropolitian", "Meal"}, byOrder[0].Keys)

	byTraffic := TimeByCityTraffic(records)
	require.Len(t, byTraffic, 2)
	assert.Equal(t, []string{"Urban", "Jam"}, byTraffic[1].Keys)

	fest := FestivalTime(records, true)
	assert.Equal(t, 2, fest.Count)
	assert.InDelta(t, 35.0, fest.Mean.Float64, 1e-9)
	noFest := FestivalTime(records, false)
	assert.Equal(t, 1, noFest.Count)
	assert.InDelta(t, 20.0, noFest.Mean.Float64, 1e-9)
	assert.False(t, noFest.Std.Valid)
}

func TestScalarViews(t *testing.T) {
	a := order("c1", "Urban", models.TrafficJam, 20)
	a.Age = sql.NullInt64{Int64: 22, Valid: true}
	a.VehicleCondition = 0
	b := order("c2", "Urban", models.TrafficJam, 20)
	b.Age = sql.NullInt64{}
	b.VehicleCondition = 2
	c := order("c1", "Urban", models.TrafficJam, 20)
	c.Age = sql.NullInt64{Int64: 38, Valid: true}
	records := []*models.CleanRecord{a, b, c}

	youngest, oldest := AgeRange(records)
	assert.Equal(t, int64(22), youngest.Int64)
	assert.Equal(t, int64(38), oldest.Int64)

	worst, best := VehicleConditionRange(records)
	assert.Equal(t, int64(0), worst.Int64)
	assert.Equal(t, int64(2), best.Int64)

	assert.Equal(t, 2, UniqueCouriers(records))
}

func TestViewsOnEmptyInput(t *testing.T) {
	assert.Empty(t, OrdersPerDay(nil))
	assert.Empty(t, TrafficShare(nil))
	assert.Empty(t, TrafficByCity(nil))
	assert.Empty(t, OrdersPerWeek(nil))
	assert.Empty(t, OrdersPerCourierByWeek(nil))
	assert.Empty(t, MedianLocations(nil))
	assert.Empty(t, RatingByCourier(nil))
	assert.Empty(t, RatingByTraffic(nil))
	assert.Empty(t, TopCouriers(nil, DefaultTopK, true))
	assert.Empty(t, TimeByCity(nil))
	assert.Empty(t, DistanceByCity(nil))
	assert.False(t, MeanDistance(nil).Valid)
	assert.False(t, FestivalTime(nil, true).Mean.Valid)

	youngest, oldest := AgeRange(nil)
	assert.False(t, youngest.Valid)
	assert.False(t, oldest.Valid)
	worst, best := VehicleConditionRange(nil)
	assert.False(t, worst.Valid)
	assert.False(t, best.Valid)
	assert.Equal(t, 0, UniqueCouriers(nil))
}
