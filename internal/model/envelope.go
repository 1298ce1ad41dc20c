package model

import "time"

// Envelope is the wrapper shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthStatus is the body returned by GET /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	Backend   string    `json:"backend,omitempty"`
	Version   string    `json:"version,omitempty"`
}
