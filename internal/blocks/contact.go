package blocks

import (
	"context"
	"strings"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type ContactBlock struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Email string `json:"email"`
}

func (b *ContactBlock) BlockType() string { return "contact" }

func buildContact(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	email := p.Property("email", "contact:email")
	email = strings.TrimPrefix(email, "mailto:")
	if email == "" || !strings.Contains(email, "@") {
		return nil
	}
	return &ContactBlock{Type: "contact", URL: "mailto:" + email, Email: email}
}
