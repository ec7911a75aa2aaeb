package entity

import "time"

// UnitStatus es el estado actual de una unidad serializada (una torta física).
// Se upserta con cada evento de su serial; solo desaparece al limpiar el log.
type UnitStatus struct {
	SerialNumber    string
	CurrentLocation string
	Status          string // tipo de evento normalizado: "_" -> espacio, mayúsculas
	LastUpdate      time.Time
}
