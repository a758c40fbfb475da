// Package cli wires the intake pipeline into the intake command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/chargedcycleworks/service-intake/pkg/api"
	"github.com/chargedcycleworks/service-intake/pkg/clients/intake"
	"github.com/chargedcycleworks/service-intake/pkg/config"
	"github.com/chargedcycleworks/service-intake/pkg/document"
	"github.com/chargedcycleworks/service-intake/pkg/services"
	"github.com/chargedcycleworks/service-intake/pkg/session"
	"github.com/chargedcycleworks/service-intake/pkg/utils"
	"github.com/chargedcycleworks/service-intake/pkg/validation"
)

// NewRootCommand builds the intake command tree around cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "intake",
		Short:         "Charged Cycle Works service intake",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newValidateCommand(cfg),
		newRenderCommand(cfg),
		newSubmitCommand(cfg),
		newHealthCommand(cfg),
		newPingCommand(cfg),
		newServeMockCommand(cfg),
	)
	return root
}

func newSession(cfg *config.Config) *session.Session {
	return session.New(validation.NewEngine(cfg.States), cfg.States)
}

func newComposer(cfg *config.Config) *document.Composer {
	return document.NewComposer(document.NewFontMetrics(), cfg.OrganizationName, cfg.FormVersion)
}

func newClient(cfg *config.Config) (intake.Client, error) {
	if err := cfg.CheckBackend(); err != nil {
		return nil, err
	}
	return intake.NewClient(cfg.BaseURL, cfg.RequestTimeout), nil
}

// loadInputs fills a fresh session from the form file and, if given, the
// signature file.
func loadInputs(cfg *config.Config, formPath, sigPath string) (*session.Session, error) {
	if formPath == "" {
		return nil, errors.New("--form is required")
	}
	s := newSession(cfg)
	if err := loadForm(formPath, s); err != nil {
		return nil, err
	}
	if sigPath != "" {
		if err := loadSignature(sigPath, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func printErrors(w io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newValidateCommand(cfg *config.Config) *cobra.Command {
	var formPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a form file as if submit had been pressed",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadInputs(cfg, formPath, "")
			if err != nil {
				return err
			}
			s.MarkSubmitAttempted()
			errs := s.VisibleErrors()
			if len(errs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Form is valid.")
				return nil
			}
			printErrors(cmd.OutOrStdout(), errs)
			return fmt.Errorf("form has %d invalid fields", len(errs))
		},
	}
	cmd.Flags().StringVar(&formPath, "form", "", "form JSON file")
	return cmd
}

func newRenderCommand(cfg *config.Config) *cobra.Command {
	var formPath, sigPath, outPath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the intake PDF locally without contacting the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadInputs(cfg, formPath, sigPath)
			if err != nil {
				return err
			}
			s.MarkSubmitAttempted()
			if errs := s.VisibleErrors(); len(errs) > 0 {
				printErrors(cmd.OutOrStdout(), errs)
				return fmt.Errorf("form has %d invalid fields", len(errs))
			}

			var sig []byte
			if !s.Signature().IsEmpty() {
				if sig, err = s.Signature().ExportPNG(); err != nil {
					return err
				}
			}
			doc, err := newComposer(cfg).Compose(s.Form(), sig)
			if err != nil {
				return err
			}
			pdf, err := document.Render(doc)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = fmt.Sprintf("intake_%s.pdf", s.Form().LastName)
			}
			if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
				return fmt.Errorf("error writing PDF: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages, %d bytes)\n", outPath, doc.Pages, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVar(&formPath, "form", "", "form JSON file")
	cmd.Flags().StringVar(&sigPath, "signature", "", "signature strokes JSON file")
	cmd.Flags().StringVar(&outPath, "out", "", "output PDF path")
	return cmd
}

func newSubmitCommand(cfg *config.Config) *cobra.Command {
	var formPath, sigPath string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Run the full submission workflow against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			s, err := loadInputs(cfg, formPath, sigPath)
			if err != nil {
				return err
			}
			defer s.Close()

			svc := services.NewSubmissionService(client, newComposer(cfg))
			if err := svc.Submit(commandContext(cmd), s); err != nil {
				var serr *services.SubmitError
				if errors.As(err, &serr) && serr.Kind == services.KindPrecondition {
					printErrors(cmd.OutOrStdout(), s.VisibleErrors())
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Service intake submitted successfully.")
			s.Dismiss()
			return nil
		},
	}
	cmd.Flags().StringVar(&formPath, "form", "", "form JSON file")
	cmd.Flags().StringVar(&sigPath, "signature", "", "signature strokes JSON file")
	return cmd
}

func newHealthCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			status, err := client.HealthCheck(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

func newPingCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Send the JSON test submission",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			resp, err := client.SubmitTest(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("test submission failed: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newServeMockCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-mock",
		Short: "Run a local backend that stores submitted PDFs",
		RunE: func(cmd *cobra.Command, args []string) error {
			router := api.NewRouter(api.NewHandlers(cfg.UploadDir), cfg.AllowedOrigins)
			utils.Logger.Infof("Mock backend starting on port %s, saving PDFs to %s", cfg.Port, cfg.UploadDir)
			return router.Run(":" + cfg.Port)
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
