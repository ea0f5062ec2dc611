package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"delivery-insights/models"
	"delivery-insights/utils"
)

// invalidMarker is the literal text the source uses for missing values.
const invalidMarker = "NaN"

// Plausible rating range; ratings outside it are marked invalid.
const (
	RatingMin = 0.0
	RatingMax = 6.0
)

var (
	// ErrMissingSeparator is returned when Time_taken(min) lacks the "(min) " prefix.
	ErrMissingSeparator = errors.New("missing time-taken separator")
	// ErrNegative is returned for a negative duration.
	ErrNegative = errors.New("negative value")
)

// Cleaner transforms RawRecords into clean, validated CleanRecords.
type Cleaner struct {
	logger *utils.Logger
	strict bool
}

// NewCleaner creates a Cleaner. In strict mode the first FormatError aborts
// the whole clean; otherwise the offending row is dropped and counted.
func NewCleaner(logger *utils.Logger, strict bool) *Cleaner {
	return &Cleaner{logger: logger, strict: strict}
}

// Clean processes raw records and returns the surviving clean records in
// input order together with per-rule drop counts.
func (c *Cleaner) Clean(raw []*models.RawRecord) ([]*models.CleanRecord, models.DropStats, error) {
	var stats models.DropStats
	result := make([]*models.CleanRecord, 0, len(raw))

	for _, r := range raw {
		rec, err := c.cleanRow(r, &stats)
		if err != nil {
			var fe *models.FormatError
			if c.strict || !errors.As(err, &fe) {
				return nil, stats, err
			}
			c.logger.Debug("[cleaner] Dropping row %d: %v", r.Row, err)
			switch fe.Column {
			case "Order_Date":
				stats.DateFormat++
			case "Time_taken(min)":
				stats.TimeFormat++
			default:
				stats.OtherFormat++
			}
			continue
		}
		if rec != nil {
			result = append(result, rec)
		}
	}

	c.logger.Info("[cleaner] Cleaned %d → %d records (dropped %d: marker=%d id=%d geo=%d date=%d time=%d format=%d traffic=%d festival=%d)",
		len(raw), len(result), stats.Total(), stats.InvalidMarker, stats.MissingID, stats.Geolocation,
		stats.DateFormat, stats.TimeFormat, stats.OtherFormat, stats.UnknownTraffic, stats.UnknownFlag)
	return result, stats, nil
}

// cleanRow returns (nil, nil) for a silently excluded row.
func (c *Cleaner) cleanRow(in *models.RawRecord, stats *models.DropStats) (*models.CleanRecord, error) {
	r := trimRecord(in)

	if hasInvalidMarker(r) {
		stats.InvalidMarker++
		return nil, nil
	}
	if r.ID == "" || r.DeliveryPersonID == "" {
		stats.MissingID++
		return nil, nil
	}

	age := parseNonNegativeInt(r.DeliveryPersonAge)
	rating := parseRating(r.DeliveryPersonRatings)
	multiple := parseNonNegativeInt(r.MultipleDeliveries)
	lat, latOK := parseFloat(r.DeliveryLocationLatitude)
	lon, lonOK := parseFloat(r.DeliveryLocationLongitude)

	if !latOK || !lonOK {
		stats.Geolocation++
		return nil, nil
	}

	orderDate, err := ParseOrderDate(r.OrderDate)
	if err != nil {
		return nil, &models.FormatError{Row: r.Row, Column: "Order_Date", Value: r.OrderDate, Err: err}
	}

	minutes, err := ExtractTimeTaken(r.TimeTaken)
	if err != nil {
		return nil, &models.FormatError{Row: r.Row, Column: "Time_taken(min)", Value: r.TimeTaken, Err: err}
	}

	traffic, ok := models.ParseTrafficDensity(r.RoadTrafficDensity)
	if !ok {
		stats.UnknownTraffic++
		return nil, nil
	}

	festival, ok := parseFestival(r.Festival)
	if !ok {
		stats.UnknownFlag++
		return nil, nil
	}

	vehicle, err := strconv.Atoi(r.VehicleCondition)
	if err != nil {
		return nil, &models.FormatError{Row: r.Row, Column: "Vehicle_condition", Value: r.VehicleCondition, Err: err}
	}
	restLat, ok := parseFloat(r.RestaurantLatitude)
	if !ok {
		return nil, &models.FormatError{Row: r.Row, Column: "Restaurant_latitude", Value: r.RestaurantLatitude, Err: strconv.ErrSyntax}
	}
	restLon, ok := parseFloat(r.RestaurantLongitude)
	if !ok {
		return nil, &models.FormatError{Row: r.Row, Column: "Restaurant_longitude", Value: r.RestaurantLongitude, Err: strconv.ErrSyntax}
	}

	return &models.CleanRecord{
		Row:                       r.Row,
		ID:                        r.ID,
		DeliveryPersonID:          r.DeliveryPersonID,
		Age:                       age,
		Rating:                    rating,
		RestaurantLatitude:        restLat,
		RestaurantLongitude:       restLon,
		DeliveryLocationLatitude:  lat,
		DeliveryLocationLongitude: lon,
		OrderDate:                 orderDate,
		TimeOrdered:               r.TimeOrdered,
		TimeOrderPicked:           r.TimeOrderPicked,
		Weather:                   models.Weather(r.WeatherConditions),
		Traffic:                   traffic,
		VehicleCondition:          vehicle,
		TypeOfOrder:               r.TypeOfOrder,
		TypeOfVehicle:             r.TypeOfVehicle,
		MultipleDeliveries:        multiple,
		Festival:                  festival,
		City:                      r.City,
		TimeTakenMin:              minutes,
	}, nil
}

// ParseOrderDate parses a DD-MM-YYYY order date as UTC midnight.
func ParseOrderDate(s string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, strings.TrimSpace(s), time.UTC)
}

// ExtractTimeTaken returns the minutes following the "(min) " separator.
//
//	"(min) 24 " → 24
func ExtractTimeTaken(s string) (int, error) {
	_, after, found := strings.Cut(s, models.TimeTakenSeparator)
	if !found {
		return 0, ErrMissingSeparator
	}
	n, err := strconv.Atoi(strings.TrimSpace(after))
	if err != nil {
		return 0, fmt.Errorf("parse minutes: %w", err)
	}
	if n < 0 {
		return 0, ErrNegative
	}
	return n, nil
}

// trimRecord returns a copy of r with every text field trimmed.
func trimRecord(r *models.RawRecord) *models.RawRecord {
	t := *r
	for _, f := range []*string{
		&t.ID, &t.DeliveryPersonID, &t.DeliveryPersonAge, &t.DeliveryPersonRatings,
		&t.RestaurantLatitude, &t.RestaurantLongitude,
		&t.DeliveryLocationLatitude, &t.DeliveryLocationLongitude,
		&t.OrderDate, &t.TimeOrdered, &t.TimeOrderPicked, &t.WeatherConditions,
		&t.RoadTrafficDensity, &t.VehicleCondition, &t.TypeOfOrder, &t.TypeOfVehicle,
		&t.MultipleDeliveries, &t.Festival, &t.City, &t.TimeTaken,
	} {
		*f = strings.TrimSpace(*f)
	}
	return &t
}

func hasInvalidMarker(r *models.RawRecord) bool {
	for _, v := range []string{r.RoadTrafficDensity, r.City, r.DeliveryPersonAge, r.MultipleDeliveries, r.Festival} {
		if v == invalidMarker {
			return true
		}
	}
	return false
}

// parseFloat coerces s to a finite float. Empty, non-numeric and non-finite
// values fail.
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNonNegativeInt(s string) sql.NullInt64 {
	f, ok := parseFloat(s)
	if !ok || f < 0 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(f), Valid: true}
}

func parseRating(s string) sql.NullFloat64 {
	f, ok := parseFloat(s)
	if !ok || f < RatingMin || f > RatingMax {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func parseFestival(s string) (bool, bool) {
	switch s {
	case "Yes":
		return true, true
	case "No":
		return false, true
	}
	return false, false
}
