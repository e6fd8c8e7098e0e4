package models

import "time"

// Dispatch — принятый запрос на исходящую отправку.
type Dispatch struct {
	ID          string    `json:"id"`
	Target      string    `json:"target"`
	MessageType string    `json:"messageType"`
	AcceptedAt  time.Time `json:"acceptedAt"`
}
