package sns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/medilink-notifier/internal/config"
	"github.com/medilink-notifier/internal/domain"
)

const androidChannelID = "high_importance_channel"

// PushSender delivers a push message to one device token through SNS mobile push.
type PushSender interface {
	Send(ctx context.Context, msg domain.PushMessage) (*domain.DeliveryReceipt, error)
	// ProjectID names the platform application messages are routed through.
	ProjectID() string
}

type publishAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type pushSender struct {
	client      publishAPI
	platformARN string
}

// NewPushSender builds a sender bound to the configured platform application.
func NewPushSender(awsCfg aws.Config, cfg *config.Config) (PushSender, error) {
	if cfg.SNSPlatformApplicationARN == "" {
		return nil, errors.New("SNS_PLATFORM_APPLICATION_ARN is not set")
	}
	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		o.Region = cfg.SNSRegion
		if cfg.AWSEndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		}
	})
	return newPushSender(client, cfg.SNSPlatformApplicationARN), nil
}

func newPushSender(client publishAPI, platformARN string) *pushSender {
	return &pushSender{client: client, platformARN: platformARN}
}

func (s *pushSender) ProjectID() string {
	return applicationName(s.platformARN)
}

func (s *pushSender) Send(ctx context.Context, msg domain.PushMessage) (*domain.DeliveryReceipt, error) {
	ep, err := s.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(s.platformARN),
		Token:                  aws.String(msg.Token),
	})
	if err != nil {
		return nil, classifyEndpointError(err)
	}

	payload, err := buildPayload(msg)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %v: %w", err, domain.ErrInvalidPayload)
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TargetArn:        ep.EndpointArn,
		Message:          aws.String(payload),
		MessageStructure: aws.String("json"),
	})
	if err != nil {
		return nil, classifyPublishError(err)
	}
	return &domain.DeliveryReceipt{MessageID: aws.ToString(out.MessageId)}, nil
}

// buildPayload renders the per-platform JSON envelope SNS expects when
// MessageStructure is "json".
func buildPayload(msg domain.PushMessage) (string, error) {
	data := msg.Data
	if data == nil {
		data = map[string]string{}
	}

	gcm := map[string]interface{}{
		"fcmV1Message": map[string]interface{}{
			"message": map[string]interface{}{
				"notification": map[string]string{"title": msg.Title, "body": msg.Body},
				"data":         data,
				"android": map[string]interface{}{
					"priority":     "high",
					"notification": map[string]string{"channel_id": androidChannelID},
				},
			},
		},
	}

	apns := map[string]interface{}{
		"aps": map[string]interface{}{
			"alert":             map[string]string{"title": msg.Title, "body": msg.Body},
			"badge":             1,
			"sound":             "default",
			"content-available": 1,
		},
	}
	for k, v := range data {
		if k != "aps" {
			apns[k] = v
		}
	}

	gcmJSON, err := json.Marshal(gcm)
	if err != nil {
		return "", err
	}
	apnsJSON, err := json.Marshal(apns)
	if err != nil {
		return "", err
	}
	envelope, err := json.Marshal(map[string]string{
		"default":      msg.Body,
		"GCM":          string(gcmJSON),
		"APNS":         string(apnsJSON),
		"APNS_SANDBOX": string(apnsJSON),
	})
	if err != nil {
		return "", err
	}
	return string(envelope), nil
}

func classifyEndpointError(err error) error {
	var invalidParam *types.InvalidParameterException
	var invalidValue *types.InvalidParameterValueException
	var notFound *types.NotFoundException
	switch {
	case errors.As(err, &invalidParam), errors.As(err, &invalidValue), errors.As(err, &notFound):
		return fmt.Errorf("register token: %v: %w", err, domain.ErrInvalidToken)
	default:
		return fmt.Errorf("register token: %v: %w", err, domain.ErrDeliveryFailed)
	}
}

func classifyPublishError(err error) error {
	var disabled *types.EndpointDisabledException
	var notFound *types.NotFoundException
	var invalidParam *types.InvalidParameterException
	var invalidValue *types.InvalidParameterValueException
	switch {
	case errors.As(err, &disabled), errors.As(err, &notFound):
		return fmt.Errorf("publish: %v: %w", err, domain.ErrInvalidToken)
	case errors.As(err, &invalidParam), errors.As(err, &invalidValue):
		return fmt.Errorf("publish: %v: %w", err, domain.ErrInvalidPayload)
	default:
		return fmt.Errorf("publish: %v: %w", err, domain.ErrDeliveryFailed)
	}
}

// applicationName extracts "medilink" from arn:aws:sns:<region>:<acct>:app/GCM/medilink.
func applicationName(arn string) string {
	if i := strings.LastIndex(arn, "/"); i >= 0 {
		return arn[i+1:]
	}
	return arn
}
