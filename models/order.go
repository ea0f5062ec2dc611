package models

import (
	"database/sql"
	"strconv"
	"time"
)

// DateLayout is the fixed DD-MM-YYYY format of Order_Date.
const DateLayout = "02-01-2006"

// TimeTakenSeparator precedes the minutes in the raw Time_taken(min) field.
const TimeTakenSeparator = "(min) "

// TrafficDensity is the road traffic level reported for an order.
type TrafficDensity string

const (
	TrafficLow    TrafficDensity = "Low"
	TrafficMedium TrafficDensity = "Medium"
	TrafficHigh   TrafficDensity = "High"
	TrafficJam    TrafficDensity = "Jam"
)

// TrafficDensities lists every valid traffic level.
var TrafficDensities = []TrafficDensity{TrafficLow, TrafficMedium, TrafficHigh, TrafficJam}

// ParseTrafficDensity reports whether s names one of the four traffic levels.
func ParseTrafficDensity(s string) (TrafficDensity, bool) {
	for _, t := range TrafficDensities {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Weather is the weather label of an order, e.g. "conditions Sunny".
// Labels outside the known set are kept verbatim.
type Weather string

const (
	WeatherSunny      Weather = "conditions Sunny"
	WeatherStormy     Weather = "conditions Stormy"
	WeatherSandstorms Weather = "conditions Sandstorms"
	WeatherCloudy     Weather = "conditions Cloudy"
	WeatherFog        Weather = "conditions Fog"
	WeatherWindy      Weather = "conditions Windy"
)

// Weathers lists the known weather labels.
var Weathers = []Weather{WeatherSunny, WeatherStormy, WeatherSandstorms, WeatherCloudy, WeatherFog, WeatherWindy}

// RawRecord holds one unvalidated row exactly as read from the source table.
type RawRecord struct {
	Row                       int
	ID                        string
	DeliveryPersonID          string
	DeliveryPersonAge         string
	DeliveryPersonRatings     string
	RestaurantLatitude        string
	RestaurantLongitude       string
	DeliveryLocationLatitude  string
	DeliveryLocationLongitude string
	OrderDate                 string
	TimeOrdered               string
	TimeOrderPicked           string
	WeatherConditions         string
	RoadTrafficDensity        string
	VehicleCondition          string
	TypeOfOrder               string
	TypeOfVehicle             string
	MultipleDeliveries        string
	Festival                  string
	City                      string
	TimeTaken                 string
}

// CleanRecord is the validated, typed projection of a RawRecord.
type CleanRecord struct {
	Row                       int
	ID                        string
	DeliveryPersonID          string
	Age                       sql.NullInt64
	Rating                    sql.NullFloat64
	RestaurantLatitude        float64
	RestaurantLongitude       float64
	DeliveryLocationLatitude  float64
	DeliveryLocationLongitude float64
	OrderDate                 time.Time
	TimeOrdered               string
	TimeOrderPicked           string
	Weather                   Weather
	Traffic                   TrafficDensity
	VehicleCondition          int
	TypeOfOrder               string
	TypeOfVehicle             string
	MultipleDeliveries        sql.NullInt64
	Festival                  bool
	City                      string
	TimeTakenMin              int
}

// Raw renders the record back into source conventions. Invalid optional
// values become empty cells so a second cleaning pass keeps them invalid.
func (c *CleanRecord) Raw() *RawRecord {
	festival := "No"
	if c.Festival {
		festival = "Yes"
	}
	return &RawRecord{
		Row:                       c.Row,
		ID:                        c.ID,
		DeliveryPersonID:          c.DeliveryPersonID,
		DeliveryPersonAge:         formatNullInt(c.Age),
		DeliveryPersonRatings:     formatNullFloat(c.Rating),
		RestaurantLatitude:        formatFloat(c.RestaurantLatitude),
		RestaurantLongitude:       formatFloat(c.RestaurantLongitude),
		DeliveryLocationLatitude:  formatFloat(c.DeliveryLocationLatitude),
		DeliveryLocationLongitude: formatFloat(c.DeliveryLocationLongitude),
		OrderDate:                 c.OrderDate.Format(DateLayout),
		TimeOrdered:               c.TimeOrdered,
		TimeOrderPicked:           c.TimeOrderPicked,
		WeatherConditions:         string(c.Weather),
		RoadTrafficDensity:        string(c.Traffic),
		VehicleCondition:          strconv.Itoa(c.VehicleCondition),
		TypeOfOrder:               c.TypeOfOrder,
		TypeOfVehicle:             c.TypeOfVehicle,
		MultipleDeliveries:        formatNullInt(c.MultipleDeliveries),
		Festival:                  festival,
		City:                      c.City,
		TimeTaken:                 TimeTakenSeparator + strconv.Itoa(c.TimeTakenMin),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatNullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(v.Float64)
}

func formatNullInt(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

// DropStats counts the rows each cleaning rule removed.
type DropStats struct {
	InvalidMarker  int
	MissingID      int
	Geolocation    int
	DateFormat     int
	TimeFormat     int
	OtherFormat    int
	UnknownTraffic int
	UnknownFlag    int
}

// Total returns the number of dropped rows across all rules.
func (d DropStats) Total() int {
	return d.InvalidMarker + d.MissingID + d.Geolocation + d.DateFormat + d.TimeFormat +
		d.OtherFormat + d.UnknownTraffic + d.UnknownFlag
}

// Filter is the sidebar state applied before any aggregation.
// A nil Weather slice disables the weather filter.
type Filter struct {
	Cutoff  time.Time
	Traffic []TrafficDensity
	Weather []Weather
}
