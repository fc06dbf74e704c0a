package main

import (
	"fmt"
	"os"

	"github.com/nurpe/freelance-shield/internal/auth"
	"github.com/nurpe/freelance-shield/internal/config"
	"github.com/nurpe/freelance-shield/internal/delivery"
	"github.com/nurpe/freelance-shield/internal/docx"
	"github.com/nurpe/freelance-shield/internal/excel"
	httphandler "github.com/nurpe/freelance-shield/internal/http"
	"github.com/nurpe/freelance-shield/internal/http/middleware"
	"github.com/nurpe/freelance-shield/internal/logger"
	"github.com/nurpe/freelance-shield/internal/pdf"
	"github.com/nurpe/freelance-shield/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	pdfGenerator, err := pdf.NewGenerator(pdf.Options{LogoPath: cfg.Branding.LogoPath, Logger: &log})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithESignSubject(cfg.ESign.DefaultSubject),
	}
	if cfg.SMTP.Enabled() {
		sink, err := delivery.NewSMTPSink(delivery.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init smtp sink")
		}
		opts = append(opts, service.WithEmailSink(sink))
	} else {
		log.Warn().Msg("SMTP_HOST not set, email delivery disabled")
	}

	agreementService := service.NewAgreementService(pdfGenerator, docx.NewGenerator(), excel.NewGenerator(), opts...)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(agreementService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting freelance shield service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
