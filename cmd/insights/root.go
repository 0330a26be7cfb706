package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"resume-insights/internal/shared/config"
	"resume-insights/internal/shared/telemetry"
)

const app = "insights"

// errReported marks a failure the view has already shown to the user.
var errReported = errors.New("failure already reported")

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("INSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           app,
		Short:         "insights scores a resume against the analysis service and prints the results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(v.GetBool("debug"))
		},
	}
	root.PersistentFlags().BoolP("debug", "d", false, "write structured logs to stderr")
	_ = v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	root.AddCommand(newAnalyzeCmd(v, config.Load()))
	root.AddCommand(newVersionCmd())
	return root
}

func setupLogging(debug bool) error {
	if !debug {
		telemetry.SetLogger(zap.NewNop())
		return nil
	}
	cfg := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zapcore.DebugLevel),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "msg",
			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalColorLevelEncoder,
			TimeKey:     "ts",
			EncodeTime:  zapcore.RFC3339TimeEncoder,
		},
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	telemetry.SetLogger(l)
	return nil
}
