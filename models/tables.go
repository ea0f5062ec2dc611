package models

import (
	"database/sql"
	"strconv"
)

// NoData is printed in place of an undefined statistic.
const NoData = "n/a"

// FormatFloat renders f with two decimals.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// FormatNullFloat renders v with two decimals, or NoData.
func FormatNullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return NoData
	}
	return FormatFloat(v.Float64)
}

// FormatNullInt renders v, or NoData.
func FormatNullInt(v sql.NullInt64) string {
	if !v.Valid {
		return NoData
	}
	return strconv.FormatInt(v.Int64, 10)
}

func statsTable(name string, keyHeader []string, groups []GroupStats) Table {
	t := Table{Name: name, Header: append(append([]string{}, keyHeader...), "count", "mean", "std")}
	for _, g := range groups {
		row := append([]string{}, g.Keys...)
		row = append(row, strconv.Itoa(g.Stats.Count), FormatNullFloat(g.Stats.Mean), FormatNullFloat(g.Stats.Std))
		t.Rows = append(t.Rows, row)
	}
	return t
}

func courierTimeTable(name string, rows []CourierTime) Table {
	t := Table{Name: name, Header: []string{"city", "delivery_person_id", "mean_time_taken"}}
	for _, c := range rows {
		t.Rows = append(t.Rows, []string{c.City, c.DeliveryPersonID, FormatFloat(c.MeanTimeTaken)})
	}
	return t
}

// Tables renders every company view.
func (r *CompanyReport) Tables() []Table {
	perDay := Table{Name: "orders_per_day", Header: []string{"order_date", "orders"}}
	for _, d := range r.OrdersPerDay {
		perDay.Rows = append(perDay.Rows, []string{d.Label(), strconv.Itoa(d.Count)})
	}

	share := Table{Name: "traffic_share", Header: []string{"traffic", "orders", "percent"}}
	for _, s := range r.TrafficShare {
		share.Rows = append(share.Rows, []string{string(s.Traffic), strconv.Itoa(s.Count), FormatFloat(s.Percent)})
	}

	byCity := Table{Name: "traffic_by_city", Header: []string{"city", "traffic", "orders"}}
	for _, c := range r.TrafficByCity {
		byCity.Rows = append(byCity.Rows, []string{c.City, string(c.Traffic), strconv.Itoa(c.Count)})
	}

	perWeek := Table{Name: "orders_per_week", Header: []string{"week", "orders"}}
	for _, w := range r.OrdersPerWeek {
		perWeek.Rows = append(perWeek.Rows, []string{w.Week, strconv.Itoa(w.Count)})
	}

	ratio := Table{Name: "orders_per_courier_week", Header: []string{"week", "orders", "couriers", "orders_per_courier"}}
	for _, w := range r.OrdersPerCourierWk {
		ratio.Rows = append(ratio.Rows, []string{w.Week, strconv.Itoa(w.Orders), strconv.Itoa(w.Couriers), FormatFloat(w.Ratio)})
	}

	markers := Table{Name: "map_markers", Header: []string{"label", "latitude", "longitude"}}
	for _, m := range r.MedianLocations {
		markers.Rows = append(markers.Rows, []string{
			m.Label(),
			strconv.FormatFloat(m.Latitude, 'f', 6, 64),
			strconv.FormatFloat(m.Longitude, 'f', 6, 64),
		})
	}

	return []Table{perDay, share, byCity, perWeek, ratio, markers}
}

// Tables renders every courier view.
func (r *CourierReport) Tables() []Table {
	overall := Table{
		Name:   "courier_overall",
		Header: []string{"min_age", "max_age", "best_vehicle_condition", "worst_vehicle_condition"},
		Rows: [][]string{{
			FormatNullInt(r.MinAge), FormatNullInt(r.MaxAge),
			FormatNullInt(r.BestVehicleCond), FormatNullInt(r.WorstVehicleCond),
		}},
	}

	ratings := Table{Name: "rating_by_courier", Header: []string{"delivery_person_id", "mean_rating"}}
	for _, c := range r.RatingByCourier {
		ratings.Rows = append(ratings.Rows, []string{c.DeliveryPersonID, FormatNullFloat(c.Mean)})
	}

	return []Table{
		overall,
		ratings,
		statsTable("rating_by_traffic", []string{"traffic"}, r.RatingByTraffic),
		statsTable("rating_by_weather", []string{"weather"}, r.RatingByWeather),
		courierTimeTable("fastest_couriers", r.FastestCouriers),
		courierTimeTable("slowest_couriers", r.SlowestCouriers),
	}
}

// Tables renders every restaurant view.
func (r *RestaurantReport) Tables() []Table {
	overall := Table{
		Name: "restaurant_overall",
		Header: []string{
			"unique_couriers", "mean_distance_km",
			"festival_mean_time", "festival_std_time",
			"non_festival_mean_time", "non_festival_std_time",
		},
		Rows: [][]string{{
			strconv.Itoa(r.UniqueCouriers), FormatNullFloat(r.MeanDistanceKm),
			FormatNullFloat(r.Festival.Mean), FormatNullFloat(r.Festival.Std),
			FormatNullFloat(r.NonFestival.Mean), FormatNullFloat(r.NonFestival.Std),
		}},
	}

	distance := Table{Name: "distance_by_city", Header: []string{"city", "mean_distance_km"}}
	for _, d := range r.DistanceByCity {
		distance.Rows = append(distance.Rows, []string{d.City, FormatFloat(d.MeanDistanceKm)})
	}

	return []Table{
		overall,
		statsTable("time_by_city", []string{"city"}, r.TimeByCity),
		statsTable("time_by_city_vehicle", []string{"city", "type_of_vehicle"}, r.TimeByCityVehicle),
		statsTable("time_by_city_order_type", []string{"city", "type_of_order"}, r.TimeByCityOrderType),
		statsTable("time_by_city_traffic", []string{"city", "traffic"}, r.TimeByCityTraffic),
		distance,
	}
}
