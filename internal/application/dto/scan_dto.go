package dto

import "time"

// RecordScanRequest payload de registro de un evento de escaneo.
type RecordScanRequest struct {
	SerialNumber string `json:"serial_number"`
	EventType    string `json:"event_type"`
	Location     string `json:"location"`
	ClientID     string `json:"client_id,omitempty"`
}

// ScanEventResponse evento tal como quedó en el log.
type ScanEventResponse struct {
	SerialNumber string    `json:"serial_number"`
	Timestamp    time.Time `json:"timestamp"`
	EventType    string    `json:"event_type"`
	Location     string    `json:"location"`
	ClientID     string    `json:"client_id,omitempty"`
}

// ClearLogsResult resultado de la limpieza en bloque del log.
type ClearLogsResult struct {
	Message string `json:"message"`
}

// UnitStatusDTO estado actual de una unidad serializada.
type UnitStatusDTO struct {
	SerialNumber    string    `json:"serial_number"`
	CurrentLocation string    `json:"current_location"`
	Status          string    `json:"status"`
	LastUpdate      time.Time `json:"last_update"`
}
