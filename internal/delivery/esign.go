package delivery

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

const ChannelESign = "esign"

// ESignPayload is an illustrative envelope request in the shape common
// e-signature providers accept. It is not bound to any provider's API.
type ESignPayload struct {
	EmailSubject string          `json:"emailSubject,omitempty"`
	Documents    []ESignDocument `json:"documents"`
	Recipients   ESignRecipients `json:"recipients"`
	Status       string          `json:"status"`
}

type ESignDocument struct {
	DocumentBase64 string `json:"documentBase64"`
	Name           string `json:"name"`
	FileExtension  string `json:"fileExtension"`
	DocumentID     string `json:"documentId"`
}

type ESignRecipients struct {
	Signers []ESignSigner `json:"signers"`
}

type ESignSigner struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	RecipientID  string `json:"recipientId"`
	RoutingOrder string `json:"routingOrder"`
}

// BuildESignPayload wraps the PDF attachment of pkg for the recipient.
func BuildESignPayload(pkg Package) (ESignPayload, error) {
	addr, err := pkg.Recipient.Address()
	if err != nil {
		return ESignPayload{}, err
	}
	doc, ok := pkg.Find(MIMEPDF)
	if !ok {
		return ESignPayload{}, fmt.Errorf("%w: e-sign needs a PDF", ErrNoAttachment)
	}

	name := addr.Name
	if name == "" {
		name = addr.Address
	}
	return ESignPayload{
		EmailSubject: strings.TrimSpace(pkg.Subject),
		Documents: []ESignDocument{{
			DocumentBase64: base64.StdEncoding.EncodeToString(doc.Content),
			Name:           doc.FileName,
			FileExtension:  strings.TrimPrefix(strings.ToLower(filepath.Ext(doc.FileName)), "."),
			DocumentID:     "1",
		}},
		Recipients: ESignRecipients{Signers: []ESignSigner{{
			Email:        addr.Address,
			Name:         name,
			RecipientID:  "1",
			RoutingOrder: "1",
		}}},
		Status: "sent",
	}, nil
}

// ESignSink renders the payload instead of calling a provider.
type ESignSink struct{}

func NewESignSink() *ESignSink {
	return &ESignSink{}
}

func (s *ESignSink) Deliver(_ context.Context, pkg Package) (Receipt, error) {
	payload, err := BuildESignPayload(pkg)
	if err != nil {
		return Receipt{}, err
	}
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Receipt{}, fmt.Errorf("encode e-sign payload: %w", err)
	}
	return Receipt{
		Channel:   ChannelESign,
		Reference: payload.Documents[0].Name,
		Payload:   body,
	}, nil
}
