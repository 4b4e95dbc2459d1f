// Package wiki looks up encyclopedia content for places: the entity
// sitelinks, page summaries and title translations. All lookups are
// best-effort; failures degrade to missing blocks, never to request
// errors. Outbound traffic is rate limited and guarded by a circuit
// breaker, and answers are memoized in process.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/pkg/breaker"
)

const entityEndpoint = "https://www.wikidata.org/w/api.php"

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	breaker    *breaker.Breaker
	memo       *gocache.Cache
	langs      map[string]bool
	log        *zap.Logger
}

func NewClient(cfg config.WikiConfig, memoTTL time.Duration, log *zap.Logger) *Client {
	langs := make(map[string]bool, len(cfg.SupportedLangs))
	for _, lang := range cfg.SupportedLangs {
		langs[lang] = true
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		breaker:    breaker.New(cfg.BreakerMaxFails, cfg.BreakerReset),
		memo:       gocache.New(memoTTL, 2*memoTTL),
		langs:      langs,
		log:        log,
	}
}

func (c *Client) SupportsLang(lang string) bool { return c.langs[lang] }

// GetEntry resolves an entity id to its page in the given language and
// returns the page summary as a knowledge-base record.
func (c *Client) GetEntry(ctx context.Context, entityID, lang string) (*domain.KBRecord, error) {
	cacheKey := "entry:" + entityID + ":" + lang
	if cached, found := c.memo.Get(cacheKey); found {
		record, _ := cached.(*domain.KBRecord)
		return record, nil
	}

	title, err := c.entityTitle(ctx, entityID, lang)
	if err != nil || title == "" {
		return nil, nil
	}
	summary, err := c.GetSummary(ctx, title, lang)
	if err != nil || summary == nil {
		return nil, nil
	}
	record := &domain.KBRecord{
		Title:         summary.Title,
		Content:       summary.Extract,
		URL:           summary.URL,
		OriginalTitle: title,
	}
	if thumb, found := c.memo.Get("thumb:" + title + ":" + lang); found {
		record.ThumbnailURL, _ = thumb.(string)
	}
	c.memo.SetDefault(cacheKey, record)
	return record, nil
}

func (c *Client) entityTitle(ctx context.Context, entityID, lang string) (string, error) {
	params := url.Values{
		"action":     {"wbgetentities"},
		"format":     {"json"},
		"ids":        {entityID},
		"props":      {"sitelinks"},
		"sitefilter": {lang + "wiki"},
	}
	var payload struct {
		Entities map[string]struct {
			Sitelinks map[string]struct {
				Title string `json:"title"`
			} `json:"sitelinks"`
		} `json:"entities"`
	}
	if err := c.fetchJSON(ctx, entityEndpoint+"?"+params.Encode(), &payload); err != nil {
		return "", err
	}
	entity, ok := payload.Entities[entityID]
	if !ok {
		return "", nil
	}
	return entity.Sitelinks[lang+"wiki"].Title, nil
}

// GetSummary fetches the page summary through the REST endpoint.
func (c *Client) GetSummary(ctx context.Context, title, lang string) (*domain.WikiSummary, error) {
	cacheKey := "summary:" + title + ":" + lang
	if cached, found := c.memo.Get(cacheKey); found {
		summary, _ := cached.(*domain.WikiSummary)
		return summary, nil
	}

	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s",
		c.langBase(lang), url.PathEscape(title))
	var payload struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}
	if err := c.fetchJSON(ctx, endpoint, &payload); err != nil {
		return nil, nil
	}
	summary := &domain.WikiSummary{
		Title:   payload.Title,
		Extract: payload.Extract,
		URL:     payload.ContentURLs.Desktop.Page,
	}
	c.memo.SetDefault(cacheKey, summary)
	c.memo.SetDefault("thumb:"+title+":"+lang, payload.Thumbnail.Source)
	return summary, nil
}

// GetTitleInLanguage resolves the page title translation through the
// langlinks of the source page.
func (c *Client) GetTitleInLanguage(ctx context.Context, title, srcLang, dstLang string) (string, error) {
	cacheKey := "title:" + title + ":" + srcLang + ":" + dstLang
	if cached, found := c.memo.Get(cacheKey); found {
		translated, _ := cached.(string)
		return translated, nil
	}

	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"titles":        {title},
		"prop":          {"langlinks"},
		"lllang":        {dstLang},
	}
	endpoint := c.langBase(srcLang) + "/w/api.php?" + params.Encode()
	var payload struct {
		Query struct {
			Pages []struct {
				Langlinks []struct {
					Lang  string `json:"lang"`
					Title string `json:"title"`
				} `json:"langlinks"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.fetchJSON(ctx, endpoint, &payload); err != nil {
		return "", nil
	}
	for _, page := range payload.Query.Pages {
		for _, link := range page.Langlinks {
			if link.Lang == dstLang {
				c.memo.SetDefault(cacheKey, link.Title)
				return link.Title, nil
			}
		}
	}
	return "", nil
}

func (c *Client) langBase(lang string) string {
	return strings.ReplaceAll(c.baseURL, "{lang}", lang)
}

func (c *Client) fetchJSON(ctx context.Context, endpoint string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.breaker.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Debug("encyclopedia request failed", zap.Error(err))
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("encyclopedia responded %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(target)
	})
}
