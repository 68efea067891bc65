package commands

import (
	"encoding/json"

	"paysplit/internal/core/descriptor"

	"github.com/spf13/cobra"
)

type decoded struct {
	Descriptor descriptor.Descriptor `json:"descriptor"`
	Totals     descriptor.Totals     `json:"totals"`
}

func decodeCmd() *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "decode [payload]",
		Short: "Decode a scanned payload and project totals for a quantity",
		Long:  "Decode a scanned payload given as an argument or on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			d, err := descriptor.Decode(text)
			if err != nil {
				return err
			}
			t, err := descriptor.Project(d, quantity)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(decoded{Descriptor: d, Totals: t})
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units being bought")
	return cmd
}
