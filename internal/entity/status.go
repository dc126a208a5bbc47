package entity

import "time"

// StatusCheck is a client heartbeat record created through the REST API.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
