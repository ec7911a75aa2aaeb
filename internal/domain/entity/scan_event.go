package entity

import "time"

// ScanEvent es un registro inmutable del log de movimientos. Se agrega siempre,
// aunque ningún producto del catálogo coincida con el serial: el log es la
// fuente de verdad y debe ser auditoría completa. Nunca se edita ni se borra
// individualmente; solo se limpia en bloque junto con unit_status.
type ScanEvent struct {
	ID           string
	Timestamp    time.Time // capturado en la ingesta, UTC
	SerialNumber string
	EventType    string // valor de scan.EventType ya validado
	Location     string
	ClientID     string // opcional; pista de origen, hoy no se usa para dedup
}
