package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/freelance-shield/internal/clause"
	"github.com/nurpe/freelance-shield/internal/delivery"
	"github.com/nurpe/freelance-shield/internal/document"
	"github.com/nurpe/freelance-shield/internal/excel"
	"github.com/nurpe/freelance-shield/internal/model"
)

const defaultESignSubject = "Please sign: Professional Services Agreement"

type PrintRenderer interface {
	Generate(doc model.AssembledDocument) ([]byte, error)
}

type DocumentRenderer interface {
	Generate(doc model.AssembledDocument) ([]byte, error)
}

type TermSheetRenderer interface {
	Generate(sheet excel.TermSheet) ([]byte, error)
}

type AgreementService struct {
	print        PrintRenderer
	document     DocumentRenderer
	termSheet    TermSheetRenderer
	email        delivery.Sink
	esign        delivery.Sink
	esignSubject string
	now          func() time.Time
	log          zerolog.Logger
}

type Option func(*AgreementService)

// WithEmailSink enables the email channel. Without it Email returns
// ErrDeliveryNotConfigured.
func WithEmailSink(sink delivery.Sink) Option {
	return func(s *AgreementService) { s.email = sink }
}

func WithESignSink(sink delivery.Sink) Option {
	return func(s *AgreementService) { s.esign = sink }
}

func WithESignSubject(subject string) Option {
	return func(s *AgreementService) {
		if strings.TrimSpace(subject) != "" {
			s.esignSubject = strings.TrimSpace(subject)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *AgreementService) { s.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *AgreementService) { s.log = log }
}

func NewAgreementService(printer PrintRenderer, doc DocumentRenderer, termSheet TermSheetRenderer, opts ...Option) *AgreementService {
	s := &AgreementService{
		print:        printer,
		document:     doc,
		termSheet:    termSheet,
		esign:        delivery.NewESignSink(),
		esignSubject: defaultESignSubject,
		now:          time.Now,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type GenerateInput struct {
	Contract model.ContractInput
	// UseScopeTemplate pre-fills a blank scope from the category library.
	UseScopeTemplate bool
	// IncludeTermSheet adds the XLSX term sheet to a Generate result.
	IncludeTermSheet bool
}

type File struct {
	FileName string
	MIMEType string
	Content  []byte
}

type Summary struct {
	Reference       string
	IssuedAt        time.Time
	ProviderName    string
	ClientName      string
	Category        model.IndustryCategory
	Payment         model.PaymentSplit
	OvertimeRate    string
	OverriddenSlots []model.ClauseSlot
}

type GenerateResult struct {
	Reference string
	Summary   Summary
	PDF       File
	DOCX      File
	TermSheet *File
}

type PreviewResult struct {
	Summary  Summary
	Document model.AssembledDocument
}

type DeliverInput struct {
	GenerateInput
	Principal   model.Principal
	Recipient   delivery.Recipient
	Subject     string
	Message     string
	IncludeDOCX bool
}

type DeliverResult struct {
	Reference string
	Receipt   delivery.Receipt
}

// prepared is one assembled agreement before rendering.
type prepared struct {
	input   model.ContractInput
	summary Summary
	doc     model.AssembledDocument
}

func (s *AgreementService) prepare(input GenerateInput) (*prepared, error) {
	in := input.Contract
	in.ProviderName = strings.TrimSpace(in.ProviderName)
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.JurisdictionCity = strings.TrimSpace(in.JurisdictionCity)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if input.UseScopeTemplate && strings.TrimSpace(in.ScopeText) == "" {
		in.ScopeText = clause.ScopeTemplate(in.IndustryCategory)
	}

	rate := document.FormatRupees(in.OvertimeRate)
	doc, err := document.Assemble(in, clause.Resolve(in.IndustryCategory, rate), s.now())
	if err != nil {
		return nil, err
	}

	return &prepared{
		input: in,
		doc:   doc,
		summary: Summary{
			Reference:       uuid.NewString(),
			IssuedAt:        doc.IssuedAt,
			ProviderName:    doc.ProviderName,
			ClientName:      doc.ClientName,
			Category:        doc.Category,
			Payment:         doc.Payment,
			OvertimeRate:    rate + "/hr",
			OverriddenSlots: clause.OverriddenSlots(in.IndustryCategory),
		},
	}, nil
}

// Generate validates the input and renders the agreement as PDF and DOCX.
func (s *AgreementService) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	p, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	result, err := s.render(ctx, p)
	if err != nil {
		return nil, err
	}
	if input.IncludeTermSheet {
		if result.TermSheet, err = s.renderTermSheet(p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *AgreementService) render(ctx context.Context, p *prepared) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pdfBytes, err := s.print.Generate(p.doc)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	docxBytes, err := s.document.Generate(p.doc)
	if err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}

	s.log.Debug().
		Str("reference", p.summary.Reference).
		Str("category", string(p.summary.Category)).
		Int("pdf_bytes", len(pdfBytes)).
		Int("docx_bytes", len(docxBytes)).
		Msg("agreement rendered")

	return &GenerateResult{
		Reference: p.summary.Reference,
		Summary:   p.summary,
		PDF: File{
			FileName: buildFileName(p.doc, "pdf"),
			MIMEType: delivery.MIMEPDF,
			Content:  pdfBytes,
		},
		DOCX: File{
			FileName: buildFileName(p.doc, "docx"),
			MIMEType: delivery.MIMEDOCX,
			Content:  docxBytes,
		},
	}, nil
}

// Preview assembles the agreement without rendering it.
func (s *AgreementService) Preview(_ context.Context, input GenerateInput) (*PreviewResult, error) {
	p, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{Summary: p.summary, Document: p.doc}, nil
}

func (s *AgreementService) TermSheet(_ context.Context, input GenerateInput) (*File, error) {
	p, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	return s.renderTermSheet(p)
}

func (s *AgreementService) renderTermSheet(p *prepared) (*File, error) {
	content, err := s.termSheet.Generate(excel.TermSheet{
		Reference:        p.summary.Reference,
		Input:            p.input,
		Document:         p.doc,
		OvertimeRateText: p.summary.OvertimeRate,
	})
	if err != nil {
		return nil, fmt.Errorf("render term sheet: %w", err)
	}
	return &File{
		FileName: buildFileName(p.doc, "xlsx"),
		MIMEType: delivery.MIMEXLSX,
		Content:  content,
	}, nil
}

// Email generates the agreement and mails it to the recipient.
func (s *AgreementService) Email(ctx context.Context, input DeliverInput) (*DeliverResult, error) {
	if s.email == nil {
		return nil, ErrDeliveryNotConfigured
	}
	if input.Subject == "" {
		input.Subject = fmt.Sprintf("%s: %s and %s", document.Title, strings.TrimSpace(input.Contract.ProviderName), strings.TrimSpace(input.Contract.ClientName))
	}
	if input.Message == "" {
		input.Message = "Please find the agreement attached for your review and signature."
	}
	return s.deliver(ctx, s.email, input)
}

// ESign generates the agreement and builds the e-signature envelope for it.
func (s *AgreementService) ESign(ctx context.Context, input DeliverInput) (*DeliverResult, error) {
	if s.esign == nil {
		return nil, ErrDeliveryNotConfigured
	}
	if input.Subject == "" {
		input.Subject = s.esignSubject
	}
	input.IncludeDOCX = false
	return s.deliver(ctx, s.esign, input)
}

func (s *AgreementService) deliver(ctx context.Context, sink delivery.Sink, input DeliverInput) (*DeliverResult, error) {
	if input.Principal.IsZero() {
		return nil, ErrPermissionDenied
	}
	if _, err := input.Recipient.Address(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p, err := s.prepare(input.GenerateInput)
	if err != nil {
		return nil, err
	}
	result, err := s.render(ctx, p)
	if err != nil {
		return nil, err
	}

	attachments := []delivery.Attachment{attachment(result.PDF)}
	if input.IncludeDOCX {
		attachments = append(attachments, attachment(result.DOCX))
	}
	receipt, err := sink.Deliver(ctx, delivery.Package{
		Recipient:   input.Recipient,
		Subject:     input.Subject,
		Body:        input.Message,
		Attachments: attachments,
	})
	if err != nil {
		if errors.Is(err, delivery.ErrInvalidRecipient) || errors.Is(err, delivery.ErrNoAttachment) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.log.Error().Err(err).Str("reference", result.Reference).Msg("delivery failed")
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.log.Info().
		Str("reference", result.Reference).
		Str("channel", receipt.Channel).
		Str("principal", input.Principal.UserID).
		Msg("agreement delivered")

	return &DeliverResult{Reference: result.Reference, Receipt: receipt}, nil
}

func attachment(f File) delivery.Attachment {
	return delivery.Attachment{FileName: f.FileName, MIMEType: f.MIMEType, Content: f.Content}
}

func buildFileName(doc model.AssembledDocument, ext string) string {
	client := sanitizeFileName(doc.ClientName)
	if client == "" {
		client = "Client"
	}
	return fmt.Sprintf("Freelance_Agreement_%s_%s.%s", client, doc.IssuedAt.Format("20060102"), ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '_')
		}
	}
	return strings.Trim(string(result), "_-")
}
