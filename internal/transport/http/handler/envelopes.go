package handler

import (
	"encoding/json"
	"net/http"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DataEnvelope wraps a payload under "data".
type DataEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// SendEnvelope is the body of a successful direct push.
type SendEnvelope struct {
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	ProjectID string       `json:"projectId"`
	Response  SendResponse `json:"response"`
}

type SendResponse struct {
	FCM         interface{} `json:"fcm"`
	FirestoreID *string     `json:"firestoreId"`
}

// SaveEnvelope is the body of a stored notification. FCM is null when no push
// was attempted or the push failed.
type SaveEnvelope struct {
	Status         string      `json:"status"`
	Message        string      `json:"message"`
	NotificationID string      `json:"notificationId"`
	FCM            interface{} `json:"fcm"`
}

type TokenEnvelope struct {
	Status    string `json:"status"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
}

type PreviewEnvelope struct {
	Status       string      `json:"status"`
	Message      string      `json:"message"`
	Notification interface{} `json:"notification"`
}

type HealthEnvelope struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {status, message} with "fail" for 4xx and "error" for 5xx.
func writeError(w http.ResponseWriter, status int, msg string) {
	s := statusFail
	if status >= http.StatusInternalServerError {
		s = statusError
	}
	writeJSON(w, status, MessageEnvelope{Status: s, Message: msg})
}
