package models

import "time"

// Message — запись в ленте сообщений пользователя. Порядок в ленте хронологический.
type Message struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
