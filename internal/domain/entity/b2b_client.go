package entity

import "time"

// B2BClient cliente mayorista (hoteles, restaurantes) que recibe entregas
// registradas con DELIVERY_B2B.
type B2BClient struct {
	ID           string
	Name         string
	ContactEmail string
	Phone        string
	Address      string
	CreatedAt    time.Time
}
