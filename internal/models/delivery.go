package models

import "time"

// Delivery is a truckload of bales dispatched against a contract.
// FactoryWeight is measured at the ginning factory, MillWeight at the
// receiving mill; both are in kilograms.
type Delivery struct {
	DeliveryID    string    `json:"delivery_id"`
	ContractID    string    `json:"contract_id"`
	Amount        float64   `json:"amount"`
	TotalBales    int       `json:"total_bales"`
	FactoryWeight float64   `json:"factory_weight"`
	MillWeight    float64   `json:"mill_weight"`
	TruckNumber   string    `json:"truck_number"`
	DriverContact string    `json:"driver_contact"`
	DepartureDate time.Time `json:"departure_date"`
	DeliveryDate  time.Time `json:"delivery_date"`
}
