package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/fetch"
	"github.com/joojungwoo/yakson/internal/ttlcache"
	"github.com/joojungwoo/yakson/internal/urlnorm"
	"github.com/joojungwoo/yakson/internal/utils"
)

// minHTMLBytes is the threshold below which a response body is treated as a
// client-rendered shell with no usable server HTML.
const minHTMLBytes = 500

// coupangProductIDRe recovers the product ID from a Coupang path when no
// HTML is obtainable.
var coupangProductIDRe = regexp.MustCompile(`/vp/products/(\d+)`)

// CommerceExtractor builds evidence bundles for commerce product pages. The
// fetched HTML is cached per normalized URL; the extracted bundle is cached
// per (commerce, lang, normalized URL).
type CommerceExtractor struct {
	fetcher       *fetch.Client
	cache         core.EvidenceCache
	htmlCache     *ttlcache.Map[string, string]
	textProcessor *utils.TextProcessor
	logger        *zap.Logger

	timeout     time.Duration
	retries     int
	defaultTTL  time.Duration
	fallbackTTL time.Duration
}

// NewCommerceExtractor creates a commerce extractor. fallbackTTL is the
// short TTL used for minimal bundles from un-fetchable pages, which may
// become fetchable soon.
func NewCommerceExtractor(
	fetcher *fetch.Client,
	cache core.EvidenceCache,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	timeout time.Duration,
	retries int,
	defaultTTL, fallbackTTL time.Duration,
) *CommerceExtractor {
	return &CommerceExtractor{
		fetcher:       fetcher,
		cache:         cache,
		htmlCache:     ttlcache.New[string, string](ttlcache.DefaultCapacity),
		textProcessor: textProcessor,
		logger:        logger,
		timeout:       timeout,
		retries:       retries,
		defaultTTL:    defaultTTL,
		fallbackTTL:   fallbackTTL,
	}
}

// Extract fetches and parses a commerce product page into an evidence
// bundle. A missing or too-short body yields a minimal fallback bundle
// rather than garbage.
func (e *CommerceExtractor) Extract(ctx context.Context, input, lang string) (*core.EvidenceBundle, error) {
	normalized := urlnorm.Normalize(input)
	key := fmt.Sprintf("commerce:%s:%s", lang, normalized)
	if cached, err := e.cache.Get(ctx, key); err == nil {
		e.logger.Debug("Commerce evidence cache hit", zap.String("key", key))
		return cached, nil
	}

	// The original URL is what we fetch, unless normalization positively
	// confirmed a product page; the mobile form serves lighter HTML.
	fetchURL := input
	if urlnorm.IsProductKey(normalized) {
		fetchURL = normalized
	}

	html, ok := e.htmlCache.Get(normalized)
	if !ok {
		body, err := e.fetcher.GetWithRetry(ctx, fetchURL, e.requestOptions(fetchURL, lang), e.timeout, e.retries)
		if err != nil {
			e.logger.Warn("Commerce page fetch failed", zap.String("url", fetchURL), zap.Error(err))
			return e.fallbackBundle(ctx, key, input), nil
		}
		html = string(body)
		if len(html) >= minHTMLBytes {
			e.htmlCache.Set(normalized, html, e.defaultTTL)
		}
	}

	if len(html) < minHTMLBytes {
		e.logger.Debug("Commerce page too short, assuming client-rendered shell",
			zap.String("url", fetchURL), zap.Int("bytes", len(html)))
		return e.fallbackBundle(ctx, key, input), nil
	}

	bundle := e.parseHTML(input, html)
	bundle.SourceText = buildSourceText(e.textProcessor, bundle)

	if err := e.cache.Set(ctx, key, bundle, e.defaultTTL); err != nil {
		e.logger.Warn("Failed to cache commerce evidence", zap.Error(err))
	}
	return bundle, nil
}

// requestOptions spoofs browser headers. Coupang additionally requires
// referer/origin/cookie headers before it serves server HTML.
func (e *CommerceExtractor) requestOptions(fetchURL, lang string) fetch.Options {
	headers := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": acceptLanguage(lang),
	}
	if u, err := url.Parse(fetchURL); err == nil {
		host := strings.ToLower(u.Hostname())
		if strings.Contains(host, "coupang.com") {
			headers["Referer"] = "https://www.coupang.com/"
			headers["Origin"] = "https://www.coupang.com"
			headers["Cookie"] = "PCID=0; x-coupang-accept-language=ko-KR"
		}
	}
	return fetch.Options{UserAgent: fetch.RandomUserAgent(), Headers: headers}
}

// parseHTML extracts name, description, and seller with a fixed precedence:
// ld+json Product block, social preview metadata, first heading, page title.
func (e *CommerceExtractor) parseHTML(pageURL, html string) *core.EvidenceBundle {
	bundle := &core.EvidenceBundle{URL: pageURL, FetchedAt: time.Now()}

	var ogTitle, heading, pageTitle string
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Debug("HTML parse failed", zap.String("url", pageURL), zap.Error(err))
	} else {
		if p, ok := findProductLD(doc); ok {
			bundle.ProductName = p.Name
			bundle.Description = p.Description
			bundle.Seller = p.sellerName()
			if bundle.Seller == "" {
				bundle.Seller = p.Brand.Name
			}
		}

		ogTitle, _ = doc.Find(`meta[property="og:title"]`).Attr("content")
		if bundle.Description == "" {
			bundle.Description, _ = doc.Find(`meta[property="og:description"]`).Attr("content")
		}
		if bundle.Seller == "" {
			bundle.Seller, _ = doc.Find(`meta[property="og:site_name"]`).Attr("content")
		}
		heading = strings.TrimSpace(doc.Find("h1").First().Text())
		pageTitle = strings.TrimSpace(doc.Find("title").First().Text())
		bundle.Title = firstNonEmpty(ogTitle, pageTitle)
	}

	if bundle.ProductName != "" {
		bundle.ProductName = CleanName(bundle.ProductName)
	}
	if bundle.ProductName == "" {
		bundle.ProductName = RefineName(ogTitle, heading, pageTitle, html)
	}
	bundle.ProductID = productIDFromURL(pageURL)

	return bundle
}

// fallbackBundle is the minimal evidence for an un-fetchable page: the URL
// plus whatever product ID the path alone reveals. Cached with the short TTL
// because the page may become fetchable soon.
func (e *CommerceExtractor) fallbackBundle(ctx context.Context, key, pageURL string) *core.EvidenceBundle {
	bundle := &core.EvidenceBundle{
		URL:       pageURL,
		ProductID: productIDFromURL(pageURL),
		FetchedAt: time.Now(),
	}
	bundle.SourceText = buildSourceText(e.textProcessor, bundle)

	if err := e.cache.Set(ctx, key, bundle, e.fallbackTTL); err != nil {
		e.logger.Warn("Failed to cache fallback bundle", zap.Error(err))
	}
	return bundle
}

// productLD is the subset of a schema.org Product block we care about.
type productLD struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Brand       struct {
		Name string `json:"name"`
	} `json:"brand"`
	Offers json.RawMessage `json:"offers"`
}

func (p *productLD) sellerName() string {
	if len(p.Offers) == 0 {
		return ""
	}
	var offer struct {
		Seller struct {
			Name string `json:"name"`
		} `json:"seller"`
	}
	if err := json.Unmarshal(p.Offers, &offer); err == nil && offer.Seller.Name != "" {
		return offer.Seller.Name
	}
	var offers []struct {
		Seller struct {
			Name string `json:"name"`
		} `json:"seller"`
	}
	if err := json.Unmarshal(p.Offers, &offers); err == nil {
		for _, o := range offers {
			if o.Seller.Name != "" {
				return o.Seller.Name
			}
		}
	}
	return ""
}

// findProductLD scans ld+json script blocks for the first Product entry.
// Malformed blocks are skipped, not fatal.
func findProductLD(doc *goquery.Document) (*productLD, bool) {
	var found *productLD
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}

		var single productLD
		if err := json.Unmarshal([]byte(raw), &single); err == nil && strings.EqualFold(single.Type, "Product") {
			found = &single
			return false
		}

		var list []productLD
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			for i := range list {
				if strings.EqualFold(list[i].Type, "Product") {
					found = &list[i]
					return false
				}
			}
		}
		return true
	})
	return found, found != nil
}

// productIDFromURL recovers a product identifier from the URL alone.
func productIDFromURL(pageURL string) string {
	if m := coupangProductIDRe.FindStringSubmatch(pageURL); len(m) > 1 {
		return m[1]
	}
	if u, err := url.Parse(pageURL); err == nil {
		for _, param := range []string{"goodscode", "itemId", "prdNo", "itemno"} {
			if v := u.Query().Get(param); v != "" {
				return v
			}
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
