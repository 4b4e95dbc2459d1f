package repository

import (
	"context"

	"github.com/places-api/internal/domain"
)

// WikiRepository looks up the knowledge base and the live encyclopedia.
// All methods degrade to (nil, nil) on recoverable downstream failures;
// callers omit the depending block in that case.
type WikiRepository interface {
	// GetEntry fetches the pre-indexed knowledge-base entry for an
	// entity id in a supported language.
	GetEntry(ctx context.Context, entityID, lang string) (*domain.KBRecord, error)

	// GetTitleInLanguage resolves the page title translation.
	GetTitleInLanguage(ctx context.Context, title, srcLang, dstLang string) (string, error)

	// GetSummary fetches the page summary in the given language.
	GetSummary(ctx context.Context, title, lang string) (*domain.WikiSummary, error)

	// SupportsLang reports whether the knowledge base is indexed for
	// the language.
	SupportsLang(lang string) bool
}
