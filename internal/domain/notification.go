package domain

import "time"

// DefaultNotificationType is used when the caller does not tag a notification.
const DefaultNotificationType = "general"

type Notification struct {
	NotificationID string                 `json:"id" dynamodbav:"notification_id"`
	Title          string                 `json:"title" dynamodbav:"title"`
	Body           string                 `json:"body" dynamodbav:"body"`
	SenderID       string                 `json:"senderId" dynamodbav:"sender_id"`
	RecipientID    string                 `json:"recipientId" dynamodbav:"recipient_id"`
	Type           string                 `json:"type" dynamodbav:"type"`
	AppointmentID  *string                `json:"appointmentId,omitempty" dynamodbav:"appointment_id,omitempty"`
	PrescriptionID *string                `json:"prescriptionId,omitempty" dynamodbav:"prescription_id,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty" dynamodbav:"data,omitempty"`
	IsRead         bool                   `json:"isRead" dynamodbav:"is_read"`
	CreatedAt      time.Time              `json:"createdAt" dynamodbav:"created_at"`
}
