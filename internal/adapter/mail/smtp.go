// Package mail delivers rendered notifications to a single recipient per call.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

// SMTPOptions configures an SMTPSender.
type SMTPOptions struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	TLSPolicy string
	Timeout   time.Duration
}

// SMTPSender sends each message as a multipart text+HTML email over SMTP.
type SMTPSender struct {
	client *gomail.Client
	from   string
	log    *slog.Logger
}

// NewSMTPSender creates a sender. No connection is opened until Send.
func NewSMTPSender(logger *slog.Logger, opts SMTPOptions) (*SMTPSender, error) {
	policy, err := parseTLSPolicy(opts.TLSPolicy)
	if err != nil {
		return nil, err
	}

	clientOpts := []gomail.Option{
		gomail.WithPort(opts.Port),
		gomail.WithTLSPolicy(policy),
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, gomail.WithTimeout(opts.Timeout))
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
		)
	}

	client, err := gomail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("mail: create smtp client: %w", err)
	}

	return &SMTPSender{
		client: client,
		from:   opts.From,
		log:    logger.With("adapter", "smtp"),
	}, nil
}

// Send delivers msg to recipient.
func (s *SMTPSender) Send(ctx context.Context, recipient string, msg domain.Message) error {
	m, err := buildMessage(s.from, recipient, msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.log.WarnContext(ctx, "smtp send failed", slog.String("error", err.Error()))
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

func buildMessage(from, recipient string, msg domain.Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("mail: from %q: %w", from, err)
	}
	if err := m.To(recipient); err != nil {
		return nil, fmt.Errorf("mail: recipient %q: %w", recipient, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()

	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBodyString(gomail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	default:
		m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	}
	return m, nil
}

func parseTLSPolicy(s string) (gomail.TLSPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mandatory":
		return gomail.TLSMandatory, nil
	case "opportunistic":
		return gomail.TLSOpportunistic, nil
	case "none":
		return gomail.NoTLS, nil
	default:
		return gomail.TLSMandatory, fmt.Errorf("mail: unknown tls policy %q", s)
	}
}
