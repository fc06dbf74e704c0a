package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
)

const (
	ChannelEmail = "email"

	defaultSMTPPort    = 587
	defaultSMTPTimeout = 20 * time.Second
)

var ErrSMTPConfig = errors.New("smtp is not configured")

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type sendFunc func(ctx context.Context, cfg SMTPConfig, msg *gomail.Msg) error

// SMTPSink mails the agreement. Credentials are only sent over STARTTLS.
type SMTPSink struct {
	cfg  SMTPConfig
	from *mail.Address
	now  func() time.Time
	send sendFunc
}

func NewSMTPSink(cfg SMTPConfig) (*SMTPSink, error) {
	cfg.Host = strings.TrimSpace(cfg.Host)
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrSMTPConfig)
	}
	if cfg.Port == 0 {
		cfg.Port = defaultSMTPPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}
	sender := cfg.From
	if strings.TrimSpace(sender) == "" {
		sender = cfg.Username
	}
	from, err := mail.ParseAddress(strings.TrimSpace(sender))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sender %q", ErrSMTPConfig, sender)
	}
	return &SMTPSink{cfg: cfg, from: from, now: time.Now, send: sendMail}, nil
}

func (s *SMTPSink) Deliver(ctx context.Context, pkg Package) (Receipt, error) {
	to, err := pkg.Recipient.Address()
	if err != nil {
		return Receipt{}, err
	}
	if len(pkg.Attachments) == 0 {
		return Receipt{}, fmt.Errorf("%w: nothing to send", ErrNoAttachment)
	}

	messageID := fmt.Sprintf("%s@%s", uuid.NewString(), s.cfg.Host)
	msg, err := BuildMessage(s.from, to, pkg, messageID, s.now())
	if err != nil {
		return Receipt{}, err
	}
	if err := s.send(ctx, s.cfg, msg); err != nil {
		return Receipt{}, fmt.Errorf("send mail to %s: %w", to.Address, err)
	}
	return Receipt{Channel: ChannelEmail, Reference: "<" + messageID + ">"}, nil
}

// BuildMessage composes a multipart/mixed message with the covering note as
// the text body followed by every attachment.
func BuildMessage(from, to *mail.Address, pkg Package, messageID string, date time.Time) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(from.Name, from.Address); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.AddToFormat(to.Name, to.Address); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	msg.Subject(pkg.Subject)
	msg.SetDateWithValue(date)
	msg.SetMessageIDWithValue(messageID)
	msg.SetBodyString(gomail.TypeTextPlain, pkg.Body)

	for _, a := range pkg.Attachments {
		contentType := a.MIMEType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		err := msg.AttachReader(a.FileName, bytes.NewReader(a.Content),
			gomail.WithFileContentType(gomail.ContentType(contentType)))
		if err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.FileName, err)
		}
	}
	return msg, nil
}

func sendMail(ctx context.Context, cfg SMTPConfig, msg *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithTLSPolicy(gomail.TLSMandatory),
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
