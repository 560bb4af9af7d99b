package models

import "time"

// DeliveryOutcome reports what happened when a RoomEvent was pushed to the
// backend. Dispatchers return it instead of an error: delivery failure is
// swallowed after being reported and never aborts event processing.
type DeliveryOutcome struct {
	Delivered  bool   `json:"delivered"`
	Enqueued   bool   `json:"enqueued"`
	Attempts   int    `json:"attempts"`
	StatusCode int    `json:"status_code,omitempty"`
	LastError  string `json:"last_error,omitempty"`
}

// DeliveryRecord is the persisted audit entry for one dispatch outcome.
type DeliveryRecord struct {
	ID         string    `json:"id" bson:"_id"`
	EventID    string    `json:"event_id" bson:"event_id"`
	RoomID     string    `json:"room_id" bson:"room_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	EventType  string    `json:"event_type" bson:"event_type"`
	Mode       string    `json:"mode" bson:"mode"`
	Delivered  bool      `json:"delivered" bson:"delivered"`
	Attempts   int       `json:"attempts" bson:"attempts"`
	StatusCode int       `json:"status_code,omitempty" bson:"status_code,omitempty"`
	LastError  string    `json:"last_error,omitempty" bson:"last_error,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
