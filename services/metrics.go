package services

import (
	"database/sql"
	"sort"

	"delivery-insights/models"
	"delivery-insights/utils"
)

// DefaultTopK is the number of couriers kept per city by TopCouriers.
const DefaultTopK = 10

// OrdersPerDay counts orders by order date, ascending.
func OrdersPerDay(records []*models.CleanRecord) []models.DayCount {
	counts := make(map[int64]*models.DayCount)
	var out []*models.DayCount
	for _, r := range records {
		k := r.OrderDate.Unix()
		d, ok := counts[k]
		if !ok {
			d = &models.DayCount{Date: r.OrderDate}
			counts[k] = d
			out = append(out, d)
		}
		d.Count++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	result := make([]models.DayCount, len(out))
	for i, d := range out {
		result[i] = *d
	}
	return result
}

// TrafficShare counts orders per traffic level and converts each count to a
// percentage of the total.
func TrafficShare(records []*models.CleanRecord) []models.TrafficShare {
	groups := groupBy(records, func(r *models.CleanRecord) []string { return []string{string(r.Traffic)} })
	out := make([]models.TrafficShare, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.TrafficShare{
			Traffic: models.TrafficDensity(g.keys[0]),
			Count:   len(g.records),
			Percent: 100 * float64(len(g.records)) / float64(len(records)),
		})
	}
	return out
}

// TrafficByCity counts orders per (city, traffic) pair.
func TrafficByCity(records []*models.CleanRecord) []models.CityTrafficCount {
	groups := groupBy(records, byCityTraffic)
	out := make([]models.CityTrafficCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CityTrafficCount{
			City:    g.keys[0],
			Traffic: models.TrafficDensity(g.keys[1]),
			Count:   len(g.records),
		})
	}
	return out
}

// OrdersPerWeek counts orders per Sunday-based week-of-year bucket.
func OrdersPerWeek(records []*models.CleanRecord) []models.WeekCount {
	groups := groupBy(records, byWeek)
	out := make([]models.WeekCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.WeekCount{Week: g.keys[0], Count: len(g.records)})
	}
	return out
}

// OrdersPerCourierByWeek divides each week's order count by its number of
// distinct delivery people.
func OrdersPerCourierByWeek(records []*models.CleanRecord) []models.WeekCourierRatio {
	groups := groupBy(records, byWeek)
	out := make([]models.WeekCourierRatio, 0, len(groups))
	for _, g := range groups {
		couriers := utils.NewSet()
		for _, r := range g.records {
			couriers.Add(r.DeliveryPersonID)
		}
		out = append(out, models.WeekCourierRatio{
			Week:     g.keys[0],
			Orders:   len(g.records),
			Couriers: couriers.Size(),
			Ratio:    float64(len(g.records)) / float64(couriers.Size()),
		})
	}
	return out
}

// MedianLocations returns one marker per (city, traffic) pair at the median
// delivery latitude and longitude.
func MedianLocations(records []*models.CleanRecord) []models.MapMarker {
	groups := groupBy(records, byCityTraffic)
	out := make([]models.MapMarker, 0, len(groups))
	for _, g := range groups {
		lats := make([]float64, len(g.records))
		lons := make([]float64, len(g.records))
		for i, r := range g.records {
			lats[i] = r.DeliveryLocationLatitude
			lons[i] = r.DeliveryLocationLongitude
		}
		out = append(out, models.MapMarker{
			City:      g.keys[0],
			Traffic:   models.TrafficDensity(g.keys[1]),
			Latitude:  median(lats),
			Longitude: median(lons),
		})
	}
	return out
}

// RatingByCourier returns each delivery person's mean rating, highest first.
// Couriers without a valid rating come last.
func RatingByCourier(records []*models.CleanRecord) []models.CourierRating {
	groups := groupBy(records, func(r *models.CleanRecord) []string { return []string{r.DeliveryPersonID} })
	out := make([]models.CourierRating, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CourierRating{
			DeliveryPersonID: g.keys[0],
			Mean:             mean(validRatings(g.records)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Mean, out[j].Mean
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Float64 > b.Float64
	})
	return out
}

// RatingByTraffic returns rating mean and deviation per traffic level.
func RatingByTraffic(records []*models.CleanRecord) []models.GroupStats {
	return statsBy(records, validRatings, func(r *models.CleanRecord) []string {
		return []string{string(r.Traffic)}
	})
}

// RatingByWeather returns rating mean and deviation per weather label.
func RatingByWeather(records []*models.CleanRecord) []models.GroupStats {
	return statsBy(records, validRatings, func(r *models.CleanRecord) []string {
		return []string{string(r.Weather)}
	})
}

// TopCouriers ranks delivery people within each city by mean time taken and
// keeps k of them. fastest selects the k smallest means in ascending order,
// otherwise the k largest in descending order. Ties keep courier id order.
func TopCouriers(records []*models.CleanRecord, k int, fastest bool) []models.CourierTime {
	groups := groupBy(records, func(r *models.CleanRecord) []string {
		return []string{r.City, r.DeliveryPersonID}
	})

	var out []models.CourierTime
	flush := func(city []models.CourierTime) {
		sort.SliceStable(city, func(i, j int) bool {
			if fastest {
				return city[i].MeanTimeTaken < city[j].MeanTimeTaken
			}
			return city[i].MeanTimeTaken > city[j].MeanTimeTaken
		})
		if len(city) > k {
			city = city[:k]
		}
		out = append(out, city...)
	}

	var current []models.CourierTime
	for _, g := range groups {
		if len(current) > 0 && current[0].City != g.keys[0] {
			flush(current)
			current = nil
		}
		current = append(current, models.CourierTime{
			City:             g.keys[0],
			DeliveryPersonID: g.keys[1],
			MeanTimeTaken:    mean(timeTaken(g.records)).Float64,
		})
	}
	if len(current) > 0 {
		flush(current)
	}
	return out
}

// OrderDistances returns the restaurant-to-delivery haversine distance of every order.
func OrderDistances(records []*models.CleanRecord) []models.OrderDistance {
	out := make([]models.OrderDistance, len(records))
	for i, r := range records {
		out[i] = models.OrderDistance{ID: r.ID, City: r.City, DistanceKm: distance(r)}
	}
	return out
}

// MeanDistance is the mean order distance across all records.
func MeanDistance(records []*models.CleanRecord) sql.NullFloat64 {
	d := make([]float64, len(records))
	for i, r := range records {
		d[i] = distance(r)
	}
	return mean(d)
}

// DistanceByCity returns the mean order distance of each city.
func DistanceByCity(records []*models.CleanRecord) []models.CityDistance {
	groups := groupBy(records, func(r *models.CleanRecord) []string { return []string{r.City} })
	out := make([]models.CityDistance, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.CityDistance{
			City:           g.keys[0],
			MeanDistanceKm: MeanDistance(g.records).Float64,
		})
	}
	return out
}

// TimeByCity returns time-taken statistics per city.
func TimeByCity(records []*models.CleanRecord) []models.GroupStats {
	return statsBy(records, timeTaken, func(r *models.CleanRecord) []string { return []string{r.City} })
}

// TimeByCityVehicle returns time-taken statistics per (city, vehicle type).
func TimeByCityVehicle(records []*models.CleanRecord) []models.GroupStats {
	return statsBy(records, timeTaken, func(r *models.CleanRecord) []string {
		return []string{r.City, r.TypeOfVehicle}
	})
}

// TimeByCityOrderType returns time-taken statistics per (city, order type).
func TimeByCityOrderType(records []*models.CleanRecord) []models.GroupStats {
	return statsBy(records, timeTaken, func(r *models.CleanRecord) []string {
		return []string{r.City, r.TypeOfOrder}
	})
}

// TimeByCityTraffic returns time-taken statistics per (city, traffic).
func TimeByCityTraffic(records []*models.CleanRecord) []models.GroupStats {
	return statsBy(records, timeTaken, byCityTraffic)
}

// FestivalTime returns time-taken statistics restricted to festival or
// non-festival orders.
func FestivalTime(records []*models.CleanRecord, festival bool) models.Stats {
	var values []float64
	for _, r := range records {
		if r.Festival == festival {
			values = append(values, float64(r.TimeTakenMin))
		}
	}
	return computeStats(values)
}

// AgeRange returns the youngest and oldest valid courier ages.
func AgeRange(records []*models.CleanRecord) (youngest, oldest sql.NullInt64) {
	for _, r := range records {
		if !r.Age.Valid {
			continue
		}
		if !youngest.Valid || r.Age.Int64 < youngest.Int64 {
			youngest = r.Age
		}
		if !oldest.Valid || r.Age.Int64 > oldest.Int64 {
			oldest = r.Age
		}
	}
	return youngest, oldest
}

// VehicleConditionRange returns the worst and best vehicle conditions.
func VehicleConditionRange(records []*models.CleanRecord) (worst, best sql.NullInt64) {
	for _, r := range records {
		v := int64(r.VehicleCondition)
		if !worst.Valid || v < worst.Int64 {
			worst = sql.NullInt64{Int64: v, Valid: true}
		}
		if !best.Valid || v > best.Int64 {
			best = sql.NullInt64{Int64: v, Valid: true}
		}
	}
	return worst, best
}

// UniqueCouriers counts distinct delivery-person ids.
func UniqueCouriers(records []*models.CleanRecord) int {
	s := utils.NewSet()
	for _, r := range records {
		s.Add(r.DeliveryPersonID)
	}
	return s.Size()
}

func statsBy(records []*models.CleanRecord, values func([]*models.CleanRecord) []float64, keyFn func(*models.CleanRecord) []string) []models.GroupStats {
	groups := groupBy(records, keyFn)
	out := make([]models.GroupStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.GroupStats{Keys: g.keys, Stats: computeStats(values(g.records))})
	}
	return out
}

func distance(r *models.CleanRecord) float64 {
	return Haversine(r.RestaurantLatitude, r.RestaurantLongitude,
		r.DeliveryLocationLatitude, r.DeliveryLocationLongitude)
}

func byCityTraffic(r *models.CleanRecord) []string {
	return []string{r.City, string(r.Traffic)}
}

func byWeek(r *models.CleanRecord) []string {
	return []string{WeekOfYear(r.OrderDate)}
}
