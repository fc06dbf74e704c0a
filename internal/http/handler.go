package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/freelance-shield/internal/clause"
	"github.com/nurpe/freelance-shield/internal/delivery"
	"github.com/nurpe/freelance-shield/internal/document"
	"github.com/nurpe/freelance-shield/internal/http/middleware"
	"github.com/nurpe/freelance-shield/internal/model"
	"github.com/nurpe/freelance-shield/internal/service"
)

type Handler struct {
	agreements *service.AgreementService
	log        zerolog.Logger
}

func NewHandler(agreements *service.AgreementService, log zerolog.Logger) *Handler {
	return &Handler{agreements: agreements, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)
	router.GET("/categories", h.listCategories)

	agreements := router.Group("/agreements")
	agreements.POST("/preview", h.preview)
	agreements.POST("/export/pdf", h.exportPDF)
	agreements.POST("/export/docx", h.exportDOCX)
	agreements.POST("/export/xlsx", h.exportXLSX)

	protected := agreements.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/email", h.email)
	protected.POST("/esign", h.esign)
}

type agreementRequest struct {
	ProviderName     string `json:"provider_name" binding:"required"`
	ClientName       string `json:"client_name" binding:"required"`
	JurisdictionCity string `json:"jurisdiction_city"`
	ProjectFee       int64  `json:"project_fee"`
	AdvancePercent   int64  `json:"advance_percent"`
	OvertimeRate     int64  `json:"overtime_rate"`
	GSTRegistered    bool   `json:"gst_registered"`
	IndustryCategory string `json:"industry_category"`
	ScopeText        string `json:"scope_text"`
	UseScopeTemplate bool   `json:"use_scope_template"`
}

func (r agreementRequest) input() service.GenerateInput {
	return service.GenerateInput{
		Contract: model.ContractInput{
			ProviderName:     r.ProviderName,
			ClientName:       r.ClientName,
			JurisdictionCity: r.JurisdictionCity,
			ProjectFee:       r.ProjectFee,
			AdvancePercent:   r.AdvancePercent,
			OvertimeRate:     r.OvertimeRate,
			GSTRegistered:    r.GSTRegistered,
			IndustryCategory: model.ParseCategory(r.IndustryCategory),
			ScopeText:        r.ScopeText,
		},
		UseScopeTemplate: r.UseScopeTemplate,
	}
}

type deliverRequest struct {
	agreementRequest
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	IncludeDOCX    bool   `json:"include_docx"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type categoryResponse struct {
	Name            string             `json:"name"`
	OverriddenSlots []model.ClauseSlot `json:"overridden_slots"`
	ScopeTemplate   string             `json:"scope_template,omitempty"`
}

func (h *Handler) listCategories(c *gin.Context) {
	items := make([]categoryResponse, 0, len(model.Categories))
	for _, category := range model.Categories {
		slots := clause.OverriddenSlots(category)
		if slots == nil {
			slots = []model.ClauseSlot{}
		}
		items = append(items, categoryResponse{
			Name:            string(category),
			OverriddenSlots: slots,
			ScopeTemplate:   clause.ScopeTemplate(category),
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}

type sectionResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type previewResponse struct {
	Reference       string             `json:"reference"`
	IssuedAt        time.Time          `json:"issued_at"`
	Category        string             `json:"category"`
	ProjectFee      int64              `json:"project_fee"`
	AdvanceAmount   int64              `json:"advance_amount"`
	BalanceAmount   int64              `json:"balance_amount"`
	OvertimeRate    string             `json:"overtime_rate"`
	OverriddenSlots []model.ClauseSlot `json:"overridden_slots"`
	Sections        []sectionResponse  `json:"sections"`
	Text            string             `json:"text"`
}

func (h *Handler) preview(c *gin.Context) {
	var req agreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.agreements.Preview(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	summary := result.Summary
	sections := make([]sectionResponse, 0, len(result.Document.Sections))
	for _, s := range result.Document.Sections {
		sections = append(sections, sectionResponse{Kind: string(s.Kind), Text: s.Text})
	}
	slots := summary.OverriddenSlots
	if slots == nil {
		slots = []model.ClauseSlot{}
	}
	c.JSON(http.StatusOK, previewResponse{
		Reference:       summary.Reference,
		IssuedAt:        summary.IssuedAt,
		Category:        string(summary.Category),
		ProjectFee:      summary.Payment.Total,
		AdvanceAmount:   summary.Payment.Advance,
		BalanceAmount:   summary.Payment.Balance,
		OvertimeRate:    summary.OvertimeRate,
		OverriddenSlots: slots,
		Sections:        sections,
		Text:            document.PlainText(result.Document),
	})
}

func (h *Handler) exportPDF(c *gin.Context) {
	h.export(c, func(r *service.GenerateResult) service.File { return r.PDF })
}

func (h *Handler) exportDOCX(c *gin.Context) {
	h.export(c, func(r *service.GenerateResult) service.File { return r.DOCX })
}

func (h *Handler) export(c *gin.Context, pick func(*service.GenerateResult) service.File) {
	var req agreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.agreements.Generate(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("X-Agreement-Reference", result.Reference)
	sendFile(c, pick(result))
}

func (h *Handler) exportXLSX(c *gin.Context) {
	var req agreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := h.agreements.TermSheet(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, *file)
}

func (h *Handler) email(c *gin.Context) {
	input, ok := h.bindDeliver(c)
	if !ok {
		return
	}

	result, err := h.agreements.Email(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference":  result.Reference,
		"channel":    result.Receipt.Channel,
		"message_id": result.Receipt.Reference,
	})
}

func (h *Handler) esign(c *gin.Context) {
	input, ok := h.bindDeliver(c)
	if !ok {
		return
	}

	result, err := h.agreements.ESign(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference": result.Reference,
		"channel":   result.Receipt.Channel,
		"payload":   json.RawMessage(result.Receipt.Payload),
	})
}

func (h *Handler) bindDeliver(c *gin.Context) (service.DeliverInput, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return service.DeliverInput{}, false
	}

	var req deliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.DeliverInput{}, false
	}

	return service.DeliverInput{
		GenerateInput: req.input(),
		Principal:     principal,
		Recipient:     delivery.Recipient{Name: req.RecipientName, Email: req.RecipientEmail},
		Subject:       req.Subject,
		Message:       req.Message,
		IncludeDOCX:   req.IncludeDOCX,
	}, true
}

func sendFile(c *gin.Context, file service.File) {
	c.Header("Content-Disposition", "attachment; filename=\""+file.FileName+"\"")
	c.Data(http.StatusOK, file.MIMEType, file.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDeliveryNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery failed"})
	default:
		h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("agreement request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
