package storage

import "delivery-insights/models"

// Source column names.
const (
	ColID                        = "ID"
	ColDeliveryPersonID          = "Delivery_person_ID"
	ColDeliveryPersonAge         = "Delivery_person_Age"
	ColDeliveryPersonRatings     = "Delivery_person_Ratings"
	ColRestaurantLatitude        = "Restaurant_latitude"
	ColRestaurantLongitude       = "Restaurant_longitude"
	ColDeliveryLocationLatitude  = "Delivery_location_latitude"
	ColDeliveryLocationLongitude = "Delivery_location_longitude"
	ColOrderDate                 = "Order_Date"
	ColTimeOrdered               = "Time_Orderd"
	ColTimeOrderPicked           = "Time_Order_picked"
	ColWeatherConditions         = "Weatherconditions"
	ColRoadTrafficDensity        = "Road_traffic_density"
	ColVehicleCondition          = "Vehicle_condition"
	ColTypeOfOrder               = "Type_of_order"
	ColTypeOfVehicle             = "Type_of_vehicle"
	ColMultipleDeliveries        = "multiple_deliveries"
	ColFestival                  = "Festival"
	ColCity                      = "City"
	ColTimeTaken                 = "Time_taken(min)"
)

// RequiredColumns must all be present in the source header.
var RequiredColumns = []string{
	ColID, ColDeliveryPersonID, ColDeliveryPersonAge, ColDeliveryPersonRatings,
	ColRestaurantLatitude, ColRestaurantLongitude,
	ColDeliveryLocationLatitude, ColDeliveryLocationLongitude,
	ColOrderDate, ColWeatherConditions, ColRoadTrafficDensity, ColVehicleCondition,
	ColTypeOfOrder, ColTypeOfVehicle, ColMultipleDeliveries, ColFestival, ColCity,
	ColTimeTaken,
}

// AllColumns is RequiredColumns plus the optional order/pickup times, in
// source order.
var AllColumns = []string{
	ColID, ColDeliveryPersonID, ColDeliveryPersonAge, ColDeliveryPersonRatings,
	ColRestaurantLatitude, ColRestaurantLongitude,
	ColDeliveryLocationLatitude, ColDeliveryLocationLongitude,
	ColOrderDate, ColTimeOrdered, ColTimeOrderPicked, ColWeatherConditions,
	ColRoadTrafficDensity, ColVehicleCondition, ColTypeOfOrder, ColTypeOfVehicle,
	ColMultipleDeliveries, ColFestival, ColCity, ColTimeTaken,
}

// recordFromColumns builds a RawRecord from a column lookup. Missing
// optional columns read as "".
func recordFromColumns(row int, get func(col string) string) *models.RawRecord {
	return &models.RawRecord{
		Row:                       row,
		ID:                        get(ColID),
		DeliveryPersonID:          get(ColDeliveryPersonID),
		DeliveryPersonAge:         get(ColDeliveryPersonAge),
		DeliveryPersonRatings:     get(ColDeliveryPersonRatings),
		RestaurantLatitude:        get(ColRestaurantLatitude),
		RestaurantLongitude:       get(ColRestaurantLongitude),
		DeliveryLocationLatitude:  get(ColDeliveryLocationLatitude),
		DeliveryLocationLongitude: get(ColDeliveryLocationLongitude),
		OrderDate:                 get(ColOrderDate),
		TimeOrdered:               get(ColTimeOrdered),
		TimeOrderPicked:           get(ColTimeOrderPicked),
		WeatherConditions:         get(ColWeatherConditions),
		RoadTrafficDensity:        get(ColRoadTrafficDensity),
		VehicleCondition:          get(ColVehicleCondition),
		TypeOfOrder:               get(ColTypeOfOrder),
		TypeOfVehicle:             get(ColTypeOfVehicle),
		MultipleDeliveries:        get(ColMultipleDeliveries),
		Festival:                  get(ColFestival),
		City:                      get(ColCity),
		TimeTaken:                 get(ColTimeTaken),
	}
}

// recordValues returns r's fields in AllColumns order.
func recordValues(r *models.RawRecord) []string {
	return []string{
		r.ID, r.DeliveryPersonID, r.DeliveryPersonAge, r.DeliveryPersonRatings,
		r.RestaurantLatitude, r.RestaurantLongitude,
		r.DeliveryLocationLatitude, r.DeliveryLocationLongitude,
		r.OrderDate, r.TimeOrdered, r.TimeOrderPicked, r.WeatherConditions,
		r.RoadTrafficDensity, r.VehicleCondition, r.TypeOfOrder, r.TypeOfVehicle,
		r.MultipleDeliveries, r.Festival, r.City, r.TimeTaken,
	}
}
