package models

import "time"

const (
	MessageStatusNew      = "new"
	MessageStatusRead     = "read"
	MessageStatusReplied  = "replied"
	MessageStatusArchived = "archived"
)

var MessageStatuses = []string{
	MessageStatusNew,
	MessageStatusRead,
	MessageStatusReplied,
	MessageStatusArchived,
}

// ContactMessage is an inbound customer inquiry, independent of any booking.
type ContactMessage struct {
	MessageID string    `json:"messageid" bson:"messageid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone" bson:"phone"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
