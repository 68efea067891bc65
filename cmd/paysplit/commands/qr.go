package commands

import (
	"fmt"
	"os"

	"paysplit/internal/core/qrcode"

	"github.com/spf13/cobra"
)

func qrCmd() *cobra.Command {
	var (
		out  string
		size int
	)
	cmd := &cobra.Command{
		Use:   "qr [payload]",
		Short: "Render a payload as a QR code",
		Long:  "Render a payload given as an argument or on stdin; without --out the code is drawn in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if out == "" {
				art, err := qrcode.Text(text)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), art)
				return nil
			}
			png, err := qrcode.Render(text, size)
			if err != nil {
				return err
			}
			return os.WriteFile(out, png, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write a PNG to this file")
	cmd.Flags().IntVar(&size, "size", qrcode.DefaultSize, "PNG edge in pixels")
	return cmd
}
