package domain

// Token scopes. ScopeNotifications guards the send, save and token lookup
// routes and is only carried by tokens the backend provisions itself.
// ScopePushClient is what the public access-token endpoint hands out.
const (
	ScopeNotifications = "notifications"
	ScopePushClient    = "push:client"
)

// PushMessage is what the push transport delivers to a single device.
// Data values are already strings: the transport accepts nothing else.
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// DeliveryReceipt identifies a message accepted by the push provider.
type DeliveryReceipt struct {
	MessageID string `json:"messageId"`
}
