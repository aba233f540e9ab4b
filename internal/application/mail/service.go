package mail

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/medilink-notifier/internal/domain"
	"github.com/medilink-notifier/internal/pkg/logger"
)

const codeValidity = "Ce code est valable pendant 10 minutes."

type MailInput struct {
	Recipient string
	Subject   domain.MailSubject
	Code      string
}

type Service interface {
	SendTransactional(ctx context.Context, in MailInput) error
}

type mailer interface {
	Send(ctx context.Context, m domain.Mail) error
}

type ServiceDeps struct {
	Mailer mailer
	Now    func() time.Time
}

type service struct {
	mailer mailer
	now    func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{mailer: deps.Mailer, now: deps.Now}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) SendTransactional(ctx context.Context, in MailInput) error {
	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" || in.Subject == "" {
		return fmt.Errorf("recipient and subject are required: %w", domain.ErrMissingInput)
	}
	if !in.Subject.Known() {
		return fmt.Errorf("unsupported subject %q: %w", in.Subject, domain.ErrMissingInput)
	}
	if in.Subject.RequiresCode() && strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("code is required for %q: %w", in.Subject, domain.ErrMissingInput)
	}
	if s.mailer == nil {
		return fmt.Errorf("mailer: %w", domain.ErrProviderNotInitialized)
	}

	m, err := s.render(recipient, in)
	if err != nil {
		return fmt.Errorf("render %q: %v: %w", in.Subject, err, domain.ErrUnexpected)
	}

	if err := s.mailer.Send(ctx, *m); err != nil {
		logger.Log.Errorw("mail delivery failed", "subject", in.Subject, "error", err)
		return fmt.Errorf("%v: %w", err, domain.ErrDeliveryFailed)
	}
	logger.Log.Infow("mail sent", "subject", in.Subject)
	return nil
}

func (s *service) render(recipient string, in MailInput) (*domain.Mail, error) {
	c := contents[in.Subject]
	v := view{
		Subject: string(in.Subject),
		Heading: c.heading,
		Year:    s.now().Year(),
	}
	if in.Subject.RequiresCode() {
		v.Code = strings.TrimSpace(in.Code)
		v.CodeValid = codeValidity
	}
	if c.withLogin {
		v.LoginURL = loginURL
	}

	var text, html bytes.Buffer
	v.Intro = c.textIntro
	if err := textTmpl.Execute(&text, v); err != nil {
		return nil, err
	}
	v.Intro = c.htmlIntro
	if err := htmlTmpl.Execute(&html, v); err != nil {
		return nil, err
	}
	return &domain.Mail{
		To:       recipient,
		Subject:  string(in.Subject),
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
