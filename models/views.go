package models

import (
	"database/sql"
	"time"
)

// DayCount is one bucket of the orders-per-day view.
type DayCount struct {
	Date  time.Time
	Count int
}

// Label formats the bucket date as DD-MM-YYYY.
func (d DayCount) Label() string { return d.Date.Format(DateLayout) }

// TrafficShare is the count and percentage of orders for one traffic level.
type TrafficShare struct {
	Traffic TrafficDensity
	Count   int
	Percent float64
}

// CityTrafficCount counts orders for a (city, traffic) pair.
type CityTrafficCount struct {
	City    string
	Traffic TrafficDensity
	Count   int
}

// WeekCount counts orders in a Sunday-based week-of-year bucket.
type WeekCount struct {
	Week  string
	Count int
}

// WeekCourierRatio is orders per distinct delivery person in a week.
type WeekCourierRatio struct {
	Week     string
	Orders   int
	Couriers int
	Ratio    float64
}

// MapMarker places one marker at the median delivery location of a (city, traffic) pair.
type MapMarker struct {
	City      string
	Traffic   TrafficDensity
	Latitude  float64
	Longitude float64
}

// Label is the popup text of the marker.
func (m MapMarker) Label() string { return m.City + " / " + string(m.Traffic) }

// Stats holds a mean and sample standard deviation. Invalid fields mean "no data".
type Stats struct {
	Count int
	Mean  sql.NullFloat64
	Std   sql.NullFloat64
}

// CourierRating is the mean rating of one delivery person.
type CourierRating struct {
	DeliveryPersonID string
	Mean             sql.NullFloat64
}

// GroupStats is a Stats value keyed by one or more grouping labels.
type GroupStats struct {
	Keys  []string
	Stats Stats
}

// CourierTime is the mean time taken by a delivery person within a city.
type CourierTime struct {
	City             string
	DeliveryPersonID string
	MeanTimeTaken    float64
}

// OrderDistance is the haversine distance of one order.
type OrderDistance struct {
	ID         string
	City       string
	DistanceKm float64
}

// CityDistance is the mean order distance of one city.
type CityDistance struct {
	City           string
	MeanDistanceKm float64
}

// CompanyReport holds the company/operations perspective.
type CompanyReport struct {
	OrdersPerDay       []DayCount
	TrafficShare       []TrafficShare
	TrafficByCity      []CityTrafficCount
	OrdersPerWeek      []WeekCount
	OrdersPerCourierWk []WeekCourierRatio
	MedianLocations    []MapMarker
}

// CourierReport holds the courier perspective.
type CourierReport struct {
	MinAge           sql.NullInt64
	MaxAge           sql.NullInt64
	BestVehicleCond  sql.NullInt64
	WorstVehicleCond sql.NullInt64
	RatingByCourier  []CourierRating
	RatingByTraffic  []GroupStats
	RatingByWeather  []GroupStats
	FastestCouriers  []CourierTime
	SlowestCouriers  []CourierTime
}

// RestaurantReport holds the restaurant perspective.
type RestaurantReport struct {
	UniqueCouriers      int
	MeanDistanceKm      sql.NullFloat64
	Festival            Stats
	NonFestival         Stats
	TimeByCity          []GroupStats
	TimeByCityVehicle   []GroupStats
	TimeByCityOrderType []GroupStats
	TimeByCityTraffic   []GroupStats
	DistanceByCity      []CityDistance
}

// Table is a named, rendered view ready for printing or export.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}
