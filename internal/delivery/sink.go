// Package delivery hands generated agreements to outside channels. Every
// channel implements Sink so generation stays testable without a network.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrNoAttachment     = errors.New("no attachment")
)

type Attachment struct {
	FileName string
	MIMEType string
	Content  []byte
}

type Recipient struct {
	Name  string
	Email string
}

// Package is what a sink delivers: the documents plus a covering note.
type Package struct {
	Recipient   Recipient
	Subject     string
	Body        string
	Attachments []Attachment
}

// Receipt describes a completed delivery. Payload carries channel output
// such as the e-sign request body.
type Receipt struct {
	Channel   string
	Reference string
	Payload   []byte
}

type Sink interface {
	Deliver(ctx context.Context, pkg Package) (Receipt, error)
}

func (r Recipient) Address() (*mail.Address, error) {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidRecipient)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	if name := strings.TrimSpace(r.Name); name != "" {
		addr.Name = name
	}
	return addr, nil
}

// Find returns the first attachment of the given MIME type.
func (p Package) Find(mimeType string) (Attachment, bool) {
	for _, a := range p.Attachments {
		if a.MIMEType == mimeType {
			return a, true
		}
	}
	return Attachment{}, false
}
