package commands

import (
	"encoding/json"

	"paysplit/internal/core/split"

	"github.com/spf13/cobra"
)

func splitCmd() *cobra.Command {
	var total, stable string
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Quote how a total divides into stable and remainder portions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stable == "" {
				stable = "0"
			}
			s, err := split.Parse(total, stable, rate)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}
	cmd.Flags().StringVar(&total, "total", "", "total price in USD")
	cmd.Flags().StringVar(&stable, "stable", "", "stable portion in USD, clamped to half of total")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}
