// Package domain holds DTOs for seller http and service contracts
package domain

import (
	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/split"

	"github.com/shopspring/decimal"
)

// QuoteInput is a live split preview request
// amounts arrive as form text so the server applies the same filter the form does
type QuoteInput struct {
	Total  string `json:"totalPriceUSD" validate:"max=32" example:"100"`
	Stable string `json:"usdtAmountUSD" validate:"max=32" example:"40"`
}

// GenerateInput builds a payment payload
type GenerateInput struct {
	Total        string `json:"totalPriceUSD" validate:"required,max=32" example:"100"`
	Stable       string `json:"usdtAmountUSD" validate:"required,max=32" example:"40"`
	ProductName  string `json:"productName,omitempty" validate:"max=512" example:"Ceramic mug"`
	ProductImage string `json:"productImageBase64,omitempty" validate:"omitempty,image_data_url" example:"data:image/png;base64,iVBORw0KGgo="`
}

// Display is what the seller screen renders next to the QR code
// ProductImage is the uploaded image even when the payload had to omit it
type Display struct {
	ProductName     string          `json:"productName,omitempty" example:"Ceramic mug"`
	ProductImage    string          `json:"productImageBase64,omitempty"`
	Total           decimal.Decimal `json:"totalPriceUSD" swaggertype:"string" example:"100"`
	Stable          decimal.Decimal `json:"usdtAmountUSD" swaggertype:"string" example:"40"`
	RemainderUSD    decimal.Decimal `json:"ivyAmountUSD" swaggertype:"string" example:"60"`
	RemainderNative decimal.Decimal `json:"ivyAmountNative" swaggertype:"string" example:"120"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate" swaggertype:"string" example:"0.5"`
}

// GenerateOutput carries the payload text plus display fields
type GenerateOutput struct {
	descriptor.Payload
	Display Display `json:"display"`
}

// QRInput renders a payload as a PNG
type QRInput struct {
	Payload string `json:"payload" validate:"required" example:"{\"productImageBase64\":null,\"totalPriceUSD\":100,\"usdtAmountUSD\":40,\"ivyAmountUSD\":60}"`
	Size    int    `json:"size,omitempty" validate:"omitempty,min=64,max=2048" example:"200"`
}

// ImageOutput is an accepted product image
type ImageOutput struct {
	ProductImage string `json:"productImageBase64" example:"data:image/png;base64,iVBORw0KGgo="`
	MediaType    string `json:"mediaType" example:"image/png"`
	Length       int    `json:"length" example:"2754"`
}

// PricingConfig is the effective pricing and payload configuration
type PricingConfig struct {
	ExchangeRate      decimal.Decimal `json:"exchangeRate" swaggertype:"string" example:"0.5"`
	MaxTotalLength    int             `json:"maxPayloadLength" example:"2800"`
	MaxImageLength    int             `json:"maxImageLength" example:"1800"`
	MaxImageFileBytes int             `json:"maxImageFileBytes" example:"512000"`
	QRSize            int             `json:"qrSize" example:"200"`
}

// DisplayFor builds display fields from a split
func DisplayFor(s split.Split, name, image string) Display {
	return Display{
		ProductName:     name,
		ProductImage:    image,
		Total:           s.Total,
		Stable:          s.Stable,
		RemainderUSD:    s.RemainderUSD,
		RemainderNative: s.RemainderNative,
		ExchangeRate:    s.Rate,
	}
}
