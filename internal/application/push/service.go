package push

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/medilink-notifier/internal/domain"
	"github.com/medilink-notifier/internal/pkg/id"
	"github.com/medilink-notifier/internal/pkg/logger"
)

const (
	accessTokenSubject = "push-client"
	clickAction        = "FLUTTER_NOTIFICATION_CLICK"
)

type SendInput struct {
	Token string
	Title string
	Body  string
	Data  map[string]interface{}
}

// SendResult is a successful delivery plus the outcome of the best-effort
// notification record write. Persisted is nil when nothing was stored.
type SendResult struct {
	Receipt    *domain.DeliveryReceipt
	ProjectID  string
	Persisted  *domain.Notification
	PersistErr error
}

type SaveInput struct {
	Title          string
	Body           string
	SenderID       string
	RecipientID    string
	Type           string
	AppointmentID  *string
	PrescriptionID *string
	Data           map[string]interface{}
	Token          string
}

// SaveResult is a stored notification plus the outcome of the optional push.
// Receipt is nil when no token was given or delivery failed (PushErr set).
type SaveResult struct {
	Notification *domain.Notification
	Receipt      *domain.DeliveryReceipt
	PushErr      error
}

type PreviewInput struct {
	Title string
	Body  string
	Data  map[string]interface{}
}

// Preview echoes a notification without contacting any provider.
type Preview struct {
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	Data        map[string]interface{} `json:"data"`
	ProcessedAt time.Time              `json:"processed_at"`
}

type AccessToken struct {
	Token     string
	ExpiresIn string
}

type Service interface {
	Send(ctx context.Context, in SendInput) (*SendResult, error)
	Save(ctx context.Context, in SaveInput) (*SaveResult, error)
	Preview(in PreviewInput) (*Preview, error)
	AccessToken(ctx context.Context) (*AccessToken, error)
}

type sender interface {
	Send(ctx context.Context, msg domain.PushMessage) (*domain.DeliveryReceipt, error)
	ProjectID() string
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type tokenSigner interface {
	Sign(subject, scope string) (string, error)
	Expiry() time.Duration
}

// ServiceDeps lists the providers. Any of them may be nil when not configured;
// operations needing a missing provider fail with domain.ErrProviderNotInitialized.
type ServiceDeps struct {
	Sender        sender
	Notifications notificationStore
	Signer        tokenSigner
	Now           func() time.Time
}

type service struct {
	sender        sender
	notifications notificationStore
	signer        tokenSigner
	now           func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		sender:        deps.Sender,
		notifications: deps.Notifications,
		signer:        deps.Signer,
		now:           deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Send(ctx context.Context, in SendInput) (*SendResult, error) {
	if in.Token == "" {
		return nil, fmt.Errorf("FCM token is required: %w", domain.ErrMissingInput)
	}
	if in.Title == "" || in.Body == "" {
		return nil, fmt.Errorf("notification title and body are required: %w", domain.ErrMissingInput)
	}
	if s.sender == nil {
		return nil, fmt.Errorf("push sender: %w", domain.ErrProviderNotInitialized)
	}

	receipt, err := s.sender.Send(ctx, domain.PushMessage{
		Token: in.Token,
		Title: in.Title,
		Body:  in.Body,
		Data:  CoerceData(in.Data),
	})
	if err != nil {
		logger.Log.Warnw("push delivery failed", "error", err)
		return nil, err
	}
	logger.Log.Infow("push delivered", "message_id", receipt.MessageID)

	res := &SendResult{Receipt: receipt, ProjectID: s.sender.ProjectID()}

	senderID := stringField(in.Data, "senderId")
	recipientID := stringField(in.Data, "recipientId")
	if senderID == "" || recipientID == "" {
		return res, nil
	}

	n := s.newNotification(in.Title, in.Body, senderID, recipientID, stringField(in.Data, "type"), in.Data)
	n.AppointmentID = optionalField(in.Data, "appointmentId")
	n.PrescriptionID = optionalField(in.Data, "prescriptionId")
	if err := s.persist(ctx, n); err != nil {
		logger.Log.Warnw("notification persistence failed after delivery", "message_id", receipt.MessageID, "error", err)
		res.PersistErr = err
		return res, nil
	}
	res.Persisted = n
	return res, nil
}

func (s *service) Save(ctx context.Context, in SaveInput) (*SaveResult, error) {
	if in.Title == "" || in.Body == "" || in.SenderID == "" || in.RecipientID == "" {
		return nil, fmt.Errorf("missing required notification fields: %w", domain.ErrMissingInput)
	}
	if s.notifications == nil {
		return nil, fmt.Errorf("notification store: %w", domain.ErrProviderNotInitialized)
	}

	n := s.newNotification(in.Title, in.Body, in.SenderID, in.RecipientID, in.Type, in.Data)
	n.AppointmentID = in.AppointmentID
	n.PrescriptionID = in.PrescriptionID
	if err := s.persist(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to save notification: %v: %w", err, domain.ErrUnexpected)
	}
	res := &SaveResult{Notification: n}

	if in.Token == "" {
		return res, nil
	}
	if s.sender == nil {
		res.PushErr = fmt.Errorf("push sender: %w", domain.ErrProviderNotInitialized)
		return res, nil
	}

	data := map[string]interface{}{
		"notificationId": n.NotificationID,
		"senderId":       n.SenderID,
		"recipientId":    n.RecipientID,
		"type":           n.Type,
	}
	for k, v := range in.Data {
		data[k] = v
	}
	data["click_action"] = clickAction

	receipt, err := s.sender.Send(ctx, domain.PushMessage{
		Token: in.Token,
		Title: in.Title,
		Body:  in.Body,
		Data:  CoerceData(data),
	})
	if err != nil {
		logger.Log.Warnw("push after save failed", "notification_id", n.NotificationID, "error", err)
		res.PushErr = err
		return res, nil
	}
	res.Receipt = receipt
	return res, nil
}

func (s *service) Preview(in PreviewInput) (*Preview, error) {
	if in.Title == "" || in.Body == "" {
		return nil, fmt.Errorf("title and body are required: %w", domain.ErrMissingInput)
	}
	data := in.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	logger.Log.Infow("test notification", "title", in.Title, "data_keys", len(data))
	return &Preview{Title: in.Title, Body: in.Body, Data: data, ProcessedAt: s.now().UTC()}, nil
}

func (s *service) AccessToken(_ context.Context) (*AccessToken, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("token signer: %w", domain.ErrProviderNotInitialized)
	}
	tok, err := s.signer.Sign(accessTokenSubject, domain.ScopePushClient)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %v: %w", err, domain.ErrUnexpected)
	}
	return &AccessToken{Token: tok, ExpiresIn: humanDuration(s.signer.Expiry())}, nil
}

func (s *service) newNotification(title, body, senderID, recipientID, typ string, data map[string]interface{}) *domain.Notification {
	now := s.now().UTC()
	if typ == "" {
		typ = domain.DefaultNotificationType
	}
	return &domain.Notification{
		NotificationID: id.NewAt(now),
		Title:          title,
		Body:           body,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Type:           typ,
		Data:           data,
		IsRead:         false,
		CreatedAt:      now,
	}
}

func (s *service) persist(ctx context.Context, n *domain.Notification) error {
	if s.notifications == nil {
		return fmt.Errorf("notification store: %w", domain.ErrProviderNotInitialized)
	}
	return s.notifications.Put(ctx, n)
}

func stringField(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(coerceValue(v))
}

func optionalField(data map[string]interface{}, key string) *string {
	if v := stringField(data, key); v != "" {
		return &v
	}
	return nil
}

// humanDuration renders whole hours as "1 hour"/"2 hours", anything else as Go duration text.
func humanDuration(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}
