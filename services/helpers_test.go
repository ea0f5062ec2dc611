package services

import (
	"database/sql"
	"fmt"
	"time"

	"delivery-insights/models"
	"delivery-insights/utils"
)

func newTestLogger() *utils.Logger { return utils.Discard() }

// validRaw returns a raw row that survives cleaning, with the untrimmed
// spacing the source dataset uses.
func validRaw(row int) *models.RawRecord {
	return &models.RawRecord{
		Row:                       row,
		ID:                        fmt.Sprintf("0x%04x ", row),
		DeliveryPersonID:          "INDORES13DEL02 ",
		DeliveryPersonAge:         "29",
		DeliveryPersonRatings:     "4.7",
		RestaurantLatitude:        "22.745049",
		RestaurantLongitude:       "75.892471",
		DeliveryLocationLatitude:  "22.765049",
		DeliveryLocationLongitude: "75.912471",
		OrderDate:                 "11-02-2022",
		TimeOrdered:               "21:55:00",
		TimeOrderPicked:           "22:10:00",
		WeatherConditions:         "conditions Sunny",
		RoadTrafficDensity:        "Jam ",
		VehicleCondition:          "2",
		TypeOfOrder:               "Snack ",
		TypeOfVehicle:             "motorcycle ",
		MultipleDeliveries:        "0 ",
		Festival:                  "No ",
		City:                      "Urban ",
		TimeTaken:                 "(min) 30",
	}
}

func date(day, month int) time.Time {
	return time.Date(2022, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// order builds a clean record directly for metric tests.
func order(courier, city string, traffic models.TrafficDensity, minutes int) *models.CleanRecord {
	return &models.CleanRecord{
		ID:                        courier + "-" + city,
		DeliveryPersonID:          courier,
		Age:                       sql.NullInt64{Int64: 30, Valid: true},
		Rating:                    sql.NullFloat64{Float64: 4.5, Valid: true},
		RestaurantLatitude:        22.745049,
		RestaurantLongitude:       75.892471,
		DeliveryLocationLatitude:  22.765049,
		DeliveryLocationLongitude: 75.912471,
		OrderDate:                 date(11, 2),
		Weather:                   models.WeatherSunny,
		Traffic:                   traffic,
		VehicleCondition:          1,
		TypeOfOrder:               "Snack",
		TypeOfVehicle:             "motorcycle",
		City:                      city,
		TimeTakenMin:              minutes,
	}
}
