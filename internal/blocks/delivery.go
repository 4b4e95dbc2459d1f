package blocks

import (
	"context"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type DeliveryBlock struct {
	Type            string `json:"type"`
	ClickAndCollect string `json:"click_and_collect"`
	Delivery        string `json:"delivery"`
	Takeaway        string `json:"takeaway"`
}

func (b *DeliveryBlock) BlockType() string { return "delivery" }

func buildDelivery(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	clickAndCollect := yesNoStatus(p.Property("click_and_collect"))
	delivery := yesNoStatus(p.Property("delivery"))
	takeaway := yesNoStatus(p.Property("takeaway"))
	if clickAndCollect == AccessUnknown && delivery == AccessUnknown && takeaway == AccessUnknown {
		return nil
	}
	return &DeliveryBlock{
		Type:            "delivery",
		ClickAndCollect: clickAndCollect,
		Delivery:        delivery,
		Takeaway:        takeaway,
	}
}

func yesNoStatus(value string) string {
	switch value {
	case "yes", "only":
		return AccessYes
	case "no":
		return AccessNo
	}
	return AccessUnknown
}
