// Package commands implements the paysplit command line
package commands

import (
	"io"
	"strings"

	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/split"
	"paysplit/internal/platform/config"
	"paysplit/internal/platform/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	rateText string
	rate     decimal.Decimal
	budget   descriptor.Budget
)

// Execute runs the CLI against os.Args
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree; defaults come from the same env keys the API reads
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "paysplit",
		Short:         "Split prices and build scannable payment descriptors",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := logger.FromEnv()
			opts.Writer = cmd.ErrOrStderr()
			opts.Format = "console"
			opts.Component = "cli"
			logger.Init(opts)

			var err error
			if strings.TrimSpace(rateText) == "" {
				rate = config.New().Prefix("PRICING_").MayDecimal("EXCHANGE_RATE", split.DefaultRate)
			} else if rate, err = split.ParseAmount(rateText); err != nil {
				return err
			}
			cfg := config.New().Prefix("PAYLOAD_")
			def := descriptor.DefaultBudget()
			budget = descriptor.Budget{
				MaxTotalLength: cfg.MayInt("MAX_TOTAL_LENGTH", def.MaxTotalLength),
				MaxImageLength: cfg.MayInt("MAX_IMAGE_LENGTH", def.MaxImageLength),
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rateText, "rate", "", "USD per remainder token (default $PRICING_EXCHANGE_RATE or 0.5)")

	root.AddCommand(splitCmd(), encodeCmd(), decodeCmd(), qrCmd())
	return root
}

// readInput returns args[0] when given, otherwise all of stdin
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func warnings(p descriptor.Payload) {
	log := logger.Named("encode")
	for _, w := range p.Warnings {
		log.Warn().Str("kind", string(w.Kind)).Msg(w.Message)
	}
}
