package models

import "time"

// ContactMessage is a message submitted through the public contact
// form. Messages are stored for the secretary to review; the portal
// does not dispatch email itself.
type ContactMessage struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// ContactRequest is the body of a contact form submission.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,notblank,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,notblank,max=200"`
	Message string `json:"message" binding:"required,notblank,max=5000"`
}
