package blocks

import (
	"context"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type TransactionalBlock struct {
	Type                string `json:"type"`
	BookingURL          string `json:"booking_url,omitempty"`
	AppointmentURL      string `json:"appointment_url,omitempty"`
	QuotationRequestURL string `json:"quotation_request_url,omitempty"`
}

func (b *TransactionalBlock) BlockType() string { return "transactional" }

func buildTransactional(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	booking := p.BookingURL()
	appointment := p.AppointmentURL()
	quotation := p.QuotationRequestURL()
	if booking == "" && appointment == "" && quotation == "" {
		return nil
	}
	return &TransactionalBlock{
		Type:                "transactional",
		BookingURL:          booking,
		AppointmentURL:      appointment,
		QuotationRequestURL: quotation,
	}
}
