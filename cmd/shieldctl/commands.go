package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nurpe/freelance-shield/internal/auth"
	"github.com/nurpe/freelance-shield/internal/clause"
	"github.com/nurpe/freelance-shield/internal/config"
	"github.com/nurpe/freelance-shield/internal/delivery"
	"github.com/nurpe/freelance-shield/internal/docx"
	"github.com/nurpe/freelance-shield/internal/excel"
	"github.com/nurpe/freelance-shield/internal/logger"
	"github.com/nurpe/freelance-shield/internal/model"
	"github.com/nurpe/freelance-shield/internal/pdf"
	"github.com/nurpe/freelance-shield/internal/service"
)

// cliPrincipal signs deliveries started from the command line.
var cliPrincipal = model.Principal{UserID: "shieldctl", Name: "shieldctl"}

type contractFlags struct {
	provider    string
	client      string
	city        string
	fee         int64
	advance     int64
	rate        int64
	gst         bool
	category    string
	scopeFile   string
	useTemplate bool
	logo        string
}

func (f *contractFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.provider, "provider", "", "service provider name")
	flags.StringVar(&f.client, "client", "", "client name")
	flags.StringVar(&f.city, "city", "", "jurisdiction city")
	flags.Int64Var(&f.fee, "fee", 0, "total project fee in rupees")
	flags.Int64Var(&f.advance, "advance", 50, "advance percentage (0-100)")
	flags.Int64Var(&f.rate, "rate", 0, "overtime rate per hour in rupees")
	flags.BoolVar(&f.gst, "gst", false, "provider is GST registered")
	flags.StringVar(&f.category, "category", "", "industry category (see 'categories')")
	flags.StringVar(&f.scopeFile, "scope-file", "", "file with the scope of work, '-' for stdin")
	flags.BoolVar(&f.useTemplate, "scope-template", false, "use the category scope template when no scope is given")
	flags.StringVar(&f.logo, "logo", "", "branding image for the PDF (overrides BRANDING_LOGO_PATH)")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("client")
}

func (f *contractFlags) input(stdin io.Reader) (service.GenerateInput, error) {
	scope, err := readScope(f.scopeFile, stdin)
	if err != nil {
		return service.GenerateInput{}, err
	}
	return service.GenerateInput{
		Contract: model.ContractInput{
			ProviderName:     f.provider,
			ClientName:       f.client,
			JurisdictionCity: f.city,
			ProjectFee:       f.fee,
			AdvancePercent:   f.advance,
			OvertimeRate:     f.rate,
			GSTRegistered:    f.gst,
			IndustryCategory: model.ParseCategory(f.category),
			ScopeText:        scope,
		},
		UseScopeTemplate: f.useTemplate,
	}, nil
}

func readScope(path string, stdin io.Reader) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read scope from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read scope file: %w", err)
		}
		return string(data), nil
	}
}

// app holds what every subcommand builds from configuration.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func loadApp() (*app, error) {
	cfg, err := config.LoadLocal()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: logger.NewWithWriter(cfg.Environment, os.Stderr)}, nil
}

func (a *app) newService(logoOverride string, opts ...service.Option) (*service.AgreementService, error) {
	logo := a.cfg.Branding.LogoPath
	if logoOverride != "" {
		logo = logoOverride
	}
	printer, err := pdf.NewGenerator(pdf.Options{LogoPath: logo, Logger: &a.log})
	if err != nil {
		return nil, err
	}
	opts = append([]service.Option{
		service.WithLogger(a.log),
		service.WithESignSubject(a.cfg.ESign.DefaultSubject),
	}, opts...)
	return service.NewAgreementService(printer, docx.NewGenerator(), excel.NewGenerator(), opts...), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shieldctl",
		Short:         "Generate freelance service agreements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCategoriesCmd(),
		newGenerateCmd(),
		newESignCmd(),
		newEmailCmd(),
		newTokenCmd(),
	)
	return root
}

func newCategoriesCmd() *cobra.Command {
	var showTemplates bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List industry categories and the clauses they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, category := range model.Categories {
				slots := clause.OverriddenSlots(category)
				names := make([]string, len(slots))
				for i, slot := range slots {
					names[i] = string(slot)
				}
				if len(names) == 0 {
					names = []string{"defaults"}
				}
				fmt.Fprintf(out, "%-24s %s\n", category, strings.Join(names, ", "))
				if showTemplates {
					if tmpl := clause.ScopeTemplate(category); tmpl != "" {
						fmt.Fprintf(out, "%s\n\n", indent(tmpl))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTemplates, "templates", false, "print the scope template of each category")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var (
		flags contractFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the agreement as PDF, DOCX and an XLSX term sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			svc, err := a.newService(flags.logo)
			if err != nil {
				return err
			}
			input, err := flags.input(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return generate(cmd.Context(), svc, input, out, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	return cmd
}

func generate(ctx context.Context, svc *service.AgreementService, input service.GenerateInput, dir string, out io.Writer) error {
	input.IncludeTermSheet = true
	result, err := svc.Generate(ctx, input)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, file := range []service.File{result.PDF, result.DOCX, *result.TermSheet} {
		path := filepath.Join(dir, file.FileName)
		if err := os.WriteFile(path, file.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file.FileName, err)
		}
		fmt.Fprintln(out, path)
	}

	p := result.Summary.Payment
	fmt.Fprintf(out, "reference %s: advance %d, balance %d\n", result.Reference, p.Advance, p.Balance)
	return nil
}

type recipientFlags struct {
	name    string
	email   string
	subject string
	message string
}

func (f *recipientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "recipient email address")
	cmd.Flags().StringVar(&f.name, "name", "", "recipient name (defaults to the client)")
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&f.message, "message", "", "covering note")
	_ = cmd.MarkFlagRequired("email")
}

func (f *recipientFlags) deliverInput(input service.GenerateInput) service.DeliverInput {
	name := f.name
	if name == "" {
		name = input.Contract.ClientName
	}
	return service.DeliverInput{
		GenerateInput: input,
		Principal:     cliPrincipal,
		Recipient:     delivery.Recipient{Name: name, Email: f.email},
		Subject:       f.subject,
		Message:       f.message,
	}
}

func newESignCmd() *cobra.Command {
	var (
		flags     contractFlags
		recipient recipientFlags
	)
	cmd := &cobra.Command{
		Use:   "esign",
		Short: "Print the e-signature envelope for the agreement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			svc, err := a.newService(flags.logo)
			if err != nil {
				return err
			}
			input, err := flags.input(cmd.InOrStdin())
			if err != nil {
				return err
			}
			result, err := svc.ESign(cmd.Context(), recipient.deliverInput(input))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(result.Receipt.Payload))
			return err
		},
	}
	flags.register(cmd)
	recipient.register(cmd)
	return cmd
}

func newEmailCmd() *cobra.Command {
	var (
		flags       contractFlags
		recipient   recipientFlags
		includeDOCX bool
	)
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Mail the agreement through the configured SMTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if !a.cfg.SMTP.Enabled() {
				return fmt.Errorf("%w: set SMTP_HOST", service.ErrDeliveryNotConfigured)
			}
			sink, err := delivery.NewSMTPSink(delivery.SMTPConfig{
				Host:     a.cfg.SMTP.Host,
				Port:     a.cfg.SMTP.Port,
				Username: a.cfg.SMTP.Username,
				Password: a.cfg.SMTP.Password,
				From:     a.cfg.SMTP.From,
				Timeout:  a.cfg.SMTP.Timeout,
			})
			if err != nil {
				return err
			}
			svc, err := a.newService(flags.logo, service.WithEmailSink(sink))
			if err != nil {
				return err
			}
			input, err := flags.input(cmd.InOrStdin())
			if err != nil {
				return err
			}
			deliver := recipient.deliverInput(input)
			deliver.IncludeDOCX = includeDOCX
			result, err := svc.Email(cmd.Context(), deliver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s (%s)\n", result.Reference, recipient.email, result.Receipt.Reference)
			return nil
		},
	}
	flags.register(cmd)
	recipient.register(cmd)
	cmd.Flags().BoolVar(&includeDOCX, "docx", false, "attach the DOCX as well")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		user  string
		email string
		name  string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the delivery endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadLocal()
			if err != nil {
				return err
			}
			if cfg.Auth.AccessSecret == "" {
				return fmt.Errorf("JWT_ACCESS_SECRET is required")
			}
			token, err := auth.NewParser(cfg.Auth.AccessSecret).Issue(model.Principal{UserID: user, Email: email, Name: name}, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "subject of the token")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func indent(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
