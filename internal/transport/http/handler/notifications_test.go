package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/medilink-notifier/internal/application/push"
	"github.com/medilink-notifier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPushSvc struct{ mock.Mock }

func (m *mockPushSvc) Send(ctx context.Context, in push.SendInput) (*push.SendResult, error) {
	args := m.Called(ctx, in)
	if r, _ := args.Get(0).(*push.SendResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPushSvc) Save(ctx context.Context, in push.SaveInput) (*push.SaveResult, error) {
	args := m.Called(ctx, in)
	if r, _ := args.Get(0).(*push.SaveResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPushSvc) Preview(in push.PreviewInput) (*push.Preview, error) {
	args := m.Called(in)
	if r, _ := args.Get(0).(*push.Preview); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPushSvc) AccessToken(ctx context.Context) (*push.AccessToken, error) {
	args := m.Called(ctx)
	if r, _ := args.Get(0).(*push.AccessToken); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTokenFinder struct{ mock.Mock }

func (m *mockTokenFinder) FindToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// captureSender records the last message handed to the push transport.
type captureSender struct{ last domain.PushMessage }

func (s *captureSender) Send(_ context.Context, msg domain.PushMessage) (*domain.DeliveryReceipt, error) {
	s.last = msg
	return &domain.DeliveryReceipt{MessageID: "m-1"}, nil
}
func (s *captureSender) ProjectID() string { return "medilink" }

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&m))
	return m
}

// --- Send ---

func TestSend_DeliveredAndPersisted(t *testing.T) {
	svc := &mockPushSvc{}
	svc.On("Send", mock.Anything, mock.Anything).Return(&push.SendResult{
		Receipt:   &domain.DeliveryReceipt{MessageID: "m-1"},
		ProjectID: "medilink",
		Persisted: &domain.Notification{NotificationID: "n-1"},
	}, nil)
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.Send(rr, postJSON("/api/v1/notifications/send", map[string]string{"token": "t", "title": "a", "body": "b"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeMap(t, rr)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Notification sent successfully via v1 API and saved to database", body["message"])
	assert.Equal(t, "medilink", body["projectId"])
	resp := body["response"].(map[string]interface{})
	assert.Equal(t, "n-1", resp["firestoreId"])
	assert.Equal(t, "m-1", resp["fcm"].(map[string]interface{})["messageId"])
}

func TestSend_PersistenceFailureStill200(t *testing.T) {
	svc := &mockPushSvc{}
	svc.On("Send", mock.Anything, mock.Anything).Return(&push.SendResult{
		Receipt:    &domain.DeliveryReceipt{MessageID: "m-1"},
		PersistErr: errors.New("table missing"),
	}, nil)
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.Send(rr, postJSON("/api/v1/notifications/send-v1", map[string]string{"token": "t", "title": "a", "body": "b"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeMap(t, rr)
	assert.Equal(t, "Notification sent successfully via v1 API", body["message"])
	assert.Nil(t, body["response"].(map[string]interface{})["firestoreId"])
}

func TestSend_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{fmt.Errorf("notification title and body are required: %w", domain.ErrMissingInput), http.StatusBadRequest, "Notification title and body are required"},
		{fmt.Errorf("endpoint disabled: %w", domain.ErrInvalidToken), http.StatusBadRequest, "Endpoint disabled"},
		{fmt.Errorf("push sender: %w", domain.ErrProviderNotInitialized), http.StatusInternalServerError, "Push sender"},
		{fmt.Errorf("throttled: %w", domain.ErrDeliveryFailed), http.StatusInternalServerError, "Throttled"},
	}
	for _, tc := range cases {
		svc := &mockPushSvc{}
		svc.On("Send", mock.Anything, mock.Anything).Return(nil, tc.err)
		h := NewNotificationHandler(svc, &mockTokenFinder{})

		rr := httptest.NewRecorder()
		h.Send(rr, postJSON("/api/v1/notifications/send", map[string]string{"token": "t"}))

		assert.Equal(t, tc.status, rr.Code)
		assert.Equal(t, tc.msg, decodeMessage(t, rr).Message)
	}
}

func TestSend_KeepsNumberLiterals(t *testing.T) {
	snd := &captureSender{}
	svc := push.NewService(push.ServiceDeps{Sender: snd})
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	raw := `{"token":"t","title":"a","body":"b","data":{"big":12345678901234567890,"ratio":1.50,"flag":true,"none":null,"nested":{"k":[1,2]}}}`
	rr := httptest.NewRecorder()
	h.Send(rr, httptest.NewRequest(http.MethodPost, "/api/v1/notifications/send", bytes.NewBufferString(raw)))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, map[string]string{
		"big":    "12345678901234567890",
		"ratio":  "1.50",
		"flag":   "true",
		"none":   "",
		"nested": `{"k":[1,2]}`,
	}, snd.last.Data)
}

// --- Save ---

func TestSave_StoredAndSent(t *testing.T) {
	svc := &mockPushSvc{}
	svc.On("Save", mock.Anything, mock.MatchedBy(func(in push.SaveInput) bool {
		return in.SenderID == "s1" && in.RecipientID == "r1" && in.Token == "tok"
	})).Return(&push.SaveResult{
		Notification: &domain.Notification{NotificationID: "n-1"},
		Receipt:      &domain.DeliveryReceipt{MessageID: "m-1"},
	}, nil)
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.Save(rr, postJSON("/api/v1/notifications/save", map[string]string{
		"title": "a", "body": "b", "senderId": "s1", "recipientId": "r1", "token": "tok",
	}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	body := decodeMap(t, rr)
	assert.Equal(t, "Notification saved and sent", body["message"])
	assert.Equal(t, "n-1", body["notificationId"])
	assert.NotNil(t, body["fcm"])
}

func TestSave_PushFailureYieldsNullFCM(t *testing.T) {
	svc := &mockPushSvc{}
	svc.On("Save", mock.Anything, mock.Anything).Return(&push.SaveResult{
		Notification: &domain.Notification{NotificationID: "n-1"},
		PushErr:      domain.ErrInvalidToken,
	}, nil)
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.Save(rr, postJSON("/api/v1/notifications/save", map[string]string{
		"title": "a", "body": "b", "senderId": "s1", "recipientId": "r1", "token": "tok",
	}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	body := decodeMap(t, rr)
	assert.Equal(t, "Notification saved to Firestore", body["message"])
	v, present := body["fcm"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestSave_MissingFields(t *testing.T) {
	svc := &mockPushSvc{}
	svc.On("Save", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("missing required notification fields: %w", domain.ErrMissingInput))
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.Save(rr, postJSON("/api/v1/notifications/save", map[string]string{"title": "a"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required notification fields", decodeMessage(t, rr).Message)
}

// --- UserToken ---

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUserToken_Found(t *testing.T) {
	tf := &mockTokenFinder{}
	tf.On("FindToken", mock.Anything, "u1").Return("fcm-abc", nil)
	h := NewNotificationHandler(&mockPushSvc{}, tf)

	rr := httptest.NewRecorder()
	h.UserToken(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/notifications/user-token/u1", nil), "userId", "u1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeMap(t, rr)
	assert.Equal(t, "fcm-abc", body["data"].(map[string]interface{})["fcmToken"])
}

func TestUserToken_NotFound(t *testing.T) {
	tf := &mockTokenFinder{}
	tf.On("FindToken", mock.Anything, "u1").Return("", fmt.Errorf("FCM token not found for this user: %w", domain.ErrNotFound))
	h := NewNotificationHandler(&mockPushSvc{}, tf)

	rr := httptest.NewRecorder()
	h.UserToken(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/notifications/user-token/u1", nil), "userId", "u1"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "FCM token not found for this user", decodeMessage(t, rr).Message)
}

// --- AccessToken / Preview ---

func TestAccessToken_Issued(t *testing.T) {
	svc := &mockPushSvc{}
	svc.On("AccessToken", mock.Anything).Return(&push.AccessToken{Token: "jwt", ExpiresIn: "1 hour"}, nil)
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.AccessToken(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notifications/get-fcm-token", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var env TokenEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, TokenEnvelope{Status: "success", Token: "jwt", ExpiresIn: "1 hour"}, env)
}

func TestAccessToken_NoSigner(t *testing.T) {
	svc := &mockPushSvc{}
	svc.On("AccessToken", mock.Anything).Return(nil, fmt.Errorf("token signer: %w", domain.ErrProviderNotInitialized))
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.AccessToken(rr, httptest.NewRequest(http.MethodGet, "/api/v1/notifications/get-fcm-token", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "error", decodeMessage(t, rr).Status)
}

func TestPreview_Echo(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := &mockPushSvc{}
	svc.On("Preview", push.PreviewInput{Title: "a", Body: "b"}).
		Return(&push.Preview{Title: "a", Body: "b", Data: map[string]interface{}{}, ProcessedAt: at}, nil)
	h := NewNotificationHandler(svc, &mockTokenFinder{})

	rr := httptest.NewRecorder()
	h.Preview(rr, postJSON("/api/v1/notifications/test-send", map[string]string{"title": "a", "body": "b"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeMap(t, rr)
	assert.Equal(t, "Test notification processed (Firebase not used)", body["message"])
	n := body["notification"].(map[string]interface{})
	assert.Equal(t, "a", n["title"])
	assert.Equal(t, "2026-03-01T08:00:00Z", n["processed_at"])
}
