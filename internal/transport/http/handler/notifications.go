package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medilink-notifier/internal/application/push"
	"github.com/medilink-notifier/internal/pkg/logger"
)

type tokenFinder interface {
	FindToken(ctx context.Context, userID string) (string, error)
}

// SendRequest is the body of POST /notifications/send and /send-v1.
type SendRequest struct {
	Token string                 `json:"token"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data"`
}

// SaveRequest is the body of POST /notifications/save.
type SaveRequest struct {
	Title          string                 `json:"title"`
	Body           string                 `json:"body"`
	SenderID       string                 `json:"senderId"`
	RecipientID    string                 `json:"recipientId"`
	Type           string                 `json:"type"`
	AppointmentID  *string                `json:"appointmentId"`
	PrescriptionID *string                `json:"prescriptionId"`
	Data           map[string]interface{} `json:"data"`
	Token          string                 `json:"token"`
}

// PreviewRequest is the body of POST /notifications/test-send.
type PreviewRequest struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data"`
}

// NotificationHandler handles push notification endpoints.
type NotificationHandler struct {
	svc    push.Service
	tokens tokenFinder
}

func NewNotificationHandler(svc push.Service, tokens tokenFinder) *NotificationHandler {
	return &NotificationHandler{svc: svc, tokens: tokens}
}

// decodeJSON keeps JSON numbers in their literal form so data values are
// forwarded exactly as the client wrote them.
func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

// Send godoc
// @Summary  Send a push notification to one device
// @Tags     notifications
// @Accept   json
// @Produce  json
// @Param    body body SendRequest true "token, title, body and data"
// @Success  200 {object} SendEnvelope
// @Failure  400 {object} MessageEnvelope
// @Failure  500 {object} MessageEnvelope
// @Security BearerAuth
// @Router   /api/v1/notifications/send [post]
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.svc.Send(r.Context(), push.SendInput{
		Token: req.Token,
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
	if err != nil {
		httpError(w, err)
		return
	}

	msg := "Notification sent successfully via v1 API"
	var storedID *string
	if res.Persisted != nil {
		msg += " and saved to database"
		storedID = &res.Persisted.NotificationID
	}
	writeJSON(w, http.StatusOK, SendEnvelope{
		Status:    statusSuccess,
		Message:   msg,
		ProjectID: res.ProjectID,
		Response:  SendResponse{FCM: res.Receipt, FirestoreID: storedID},
	})
}

// Save godoc
// @Summary  Store a notification and optionally push it
// @Tags     notifications
// @Accept   json
// @Produce  json
// @Param    body body SaveRequest true "notification fields"
// @Success  201 {object} SaveEnvelope
// @Failure  400 {object} MessageEnvelope
// @Failure  500 {object} MessageEnvelope
// @Security BearerAuth
// @Router   /api/v1/notifications/save [post]
func (h *NotificationHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.svc.Save(r.Context(), push.SaveInput{
		Title:          req.Title,
		Body:           req.Body,
		SenderID:       req.SenderID,
		RecipientID:    req.RecipientID,
		Type:           req.Type,
		AppointmentID:  req.AppointmentID,
		PrescriptionID: req.PrescriptionID,
		Data:           req.Data,
		Token:          req.Token,
	})
	if err != nil {
		httpError(w, err)
		return
	}

	env := SaveEnvelope{
		Status:         statusSuccess,
		Message:        "Notification saved to Firestore",
		NotificationID: res.Notification.NotificationID,
	}
	if res.Receipt != nil {
		env.Message = "Notification saved and sent"
		env.FCM = res.Receipt
	}
	writeJSON(w, http.StatusCreated, env)
}

// UserToken godoc
// @Summary  Look up a user's push token
// @Tags     notifications
// @Produce  json
// @Param    userId path string true "user id"
// @Success  200 {object} DataEnvelope
// @Failure  404 {object} MessageEnvelope
// @Security BearerAuth
// @Router   /api/v1/notifications/user-token/{userId} [get]
func (h *NotificationHandler) UserToken(w http.ResponseWriter, r *http.Request) {
	tok, err := h.tokens.FindToken(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{
		Status: statusSuccess,
		Data:   map[string]string{"fcmToken": tok},
	})
}

// AccessToken godoc
// @Summary  Issue a short-lived access token for notification clients
// @Tags     notifications
// @Produce  json
// @Success  200 {object} TokenEnvelope
// @Failure  500 {object} MessageEnvelope
// @Router   /api/v1/notifications/get-fcm-token [get]
func (h *NotificationHandler) AccessToken(w http.ResponseWriter, r *http.Request) {
	tok, err := h.svc.AccessToken(r.Context())
	if err != nil {
		logger.Log.Errorw("access token issuance failed", "error", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenEnvelope{Status: statusSuccess, Token: tok.Token, ExpiresIn: tok.ExpiresIn})
}

// Preview godoc
// @Summary  Echo a notification without delivering it
// @Tags     notifications
// @Accept   json
// @Produce  json
// @Param    body body PreviewRequest true "title, body and data"
// @Success  200 {object} PreviewEnvelope
// @Failure  400 {object} MessageEnvelope
// @Router   /api/v1/notifications/test-send [post]
func (h *NotificationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.svc.Preview(push.PreviewInput{Title: req.Title, Body: req.Body, Data: req.Data})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PreviewEnvelope{
		Status:       statusSuccess,
		Message:      "Test notification processed (Firebase not used)",
		Notification: p,
	})
}
