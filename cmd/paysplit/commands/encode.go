package commands

import (
	"fmt"
	"os"

	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/imagedata"
	"paysplit/internal/core/normalize"
	"paysplit/internal/core/qrcode"
	"paysplit/internal/core/split"
	perr "paysplit/internal/platform/errors"

	"github.com/spf13/cobra"
)

func encodeCmd() *cobra.Command {
	var (
		total, stable, name string
		imagePath, pngPath  string
		size                int
		terminal            bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a payment descriptor payload and optionally its QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := split.Parse(total, stable, rate)
			if err != nil {
				return err
			}
			if err := s.Usable(); err != nil {
				return err
			}
			if s.Adjusted {
				return perr.WithField(perr.InvalidInputf("Stable amount cannot exceed 50%% of total price."), "usdtAmountUSD")
			}

			var image string
			if imagePath != "" {
				f, err := os.Open(imagePath)
				if err != nil {
					return err
				}
				defer f.Close()
				if image, err = imagedata.FromReader(f, imagedata.DefaultMaxBytes); err != nil {
					return err
				}
			}

			p, err := descriptor.NewEncoder(budget).Encode(descriptor.FromSplit(s, normalize.Label(name), image))
			if err != nil {
				return err
			}
			warnings(p)
			fmt.Fprintln(cmd.OutOrStdout(), p.Text)

			if pngPath != "" {
				png, err := qrcode.Render(p.Text, size)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, png, 0o644); err != nil {
					return err
				}
			}
			if terminal {
				art, err := qrcode.Text(p.Text)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), art)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&total, "total", "", "total price in USD")
	cmd.Flags().StringVar(&stable, "stable", "", "stable portion in USD")
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&imagePath, "image", "", "product image file")
	cmd.Flags().StringVarP(&pngPath, "out", "o", "", "write the QR code PNG to this file")
	cmd.Flags().IntVar(&size, "size", qrcode.DefaultSize, "QR code edge in pixels")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "print the QR code to the terminal")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("stable")
	return cmd
}
