package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-insights/internal/insights"
	"resume-insights/internal/scoring"
	"resume-insights/internal/shared/config"
	"resume-insights/internal/surface/textview"
	"resume-insights/internal/upload"
)

func newAnalyzeCmd(v *viper.Viper, cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <resume.pdf>",
		Short: "Analyze a PDF resume and print the insights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, v, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("endpoint", cfg.ScoringEndpoint, "scoring service base URL or analyze URL")
	flags.Duration("timeout", cfg.ScoringTimeout, "scoring request timeout, 0 for none")
	flags.Int64("max-upload-bytes", cfg.MaxUploadBytes, "largest resume accepted")
	flags.Bool("verify-pdf", cfg.VerifyPDF, "open the PDF locally before sending it")
	flags.StringP("job-description-file", "j", "", "file with the job description to compare against")
	flags.StringP("industry", "i", "", "industry to match keywords for")
	flags.String("chart-png", "", "also write the factor chart to this PNG file")

	for _, name := range []string{"endpoint", "timeout", "max-upload-bytes", "verify-pdf", "job-description-file", "industry", "chart-png"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

func runAnalyze(cmd *cobra.Command, v *viper.Viper, path string) error {
	var jobDescription string
	if jdPath := v.GetString("job-description-file"); jdPath != "" {
		data, err := os.ReadFile(jdPath)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jobDescription = strings.TrimSpace(string(data))
	}

	client, err := scoring.NewClient(v.GetString("endpoint"), v.GetDuration("timeout"))
	if err != nil {
		return err
	}
	validator := upload.Validator{
		MaxBytes:  v.GetInt64("max-upload-bytes"),
		VerifyPDF: v.GetBool("verify-pdf"),
	}

	view := textview.New(cmd.OutOrStdout(), textview.Options{ChartPNG: v.GetString("chart-png")})
	presenter := insights.NewPresenter(client, view)
	defer presenter.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open resume: %w", err)
	}
	defer f.Close()

	file, err := validator.ReadAndValidate(filepath.Base(path), f)
	if err != nil {
		presenter.Reject(err)
		return errReported
	}
	if err := presenter.Submit(cmd.Context(), file, jobDescription, v.GetString("industry")); err != nil {
		return errReported
	}
	return nil
}
