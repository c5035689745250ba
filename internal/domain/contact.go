package domain

import "time"

// Contact is a stored contact-form submission.
type Contact struct {
	ContactID string    `json:"id" dynamodbav:"contact_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Message   string    `json:"message" dynamodbav:"message"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}
