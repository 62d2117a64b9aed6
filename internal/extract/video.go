package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/fetch"
	"github.com/joojungwoo/yakson/internal/utils"
)

// oembedEndpoint is a var for test injection.
var oembedEndpoint = "https://www.youtube.com/oembed"

var (
	// shortDescriptionRe finds the description embedded in the player
	// response script blob.
	shortDescriptionRe = regexp.MustCompile(`"shortDescription"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	// htmlTitleRe is the fallback when oEmbed gave nothing.
	htmlTitleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	// authorRe is the script-blob fallback for the channel name.
	authorRe = regexp.MustCompile(`"author"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// VideoExtractor builds evidence bundles for video references via an oEmbed
// metadata call plus a best-effort HTML fetch. Either sub-call may fail
// independently without failing the extraction.
type VideoExtractor struct {
	fetcher       *fetch.Client
	cache         core.EvidenceCache
	textProcessor *utils.TextProcessor
	logger        *zap.Logger

	oembedTimeout time.Duration
	htmlTimeout   time.Duration
	cacheTTL      time.Duration
}

// NewVideoExtractor creates a video extractor.
func NewVideoExtractor(
	fetcher *fetch.Client,
	cache core.EvidenceCache,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	oembedTimeout, htmlTimeout, cacheTTL time.Duration,
) *VideoExtractor {
	return &VideoExtractor{
		fetcher:       fetcher,
		cache:         cache,
		textProcessor: textProcessor,
		logger:        logger,
		oembedTimeout: oembedTimeout,
		htmlTimeout:   htmlTimeout,
		cacheTTL:      cacheTTL,
	}
}

// Extract fetches title, channel, and description for a video URL. The
// bundle is cached under (video, lang, url).
func (e *VideoExtractor) Extract(ctx context.Context, input, lang string) (*core.EvidenceBundle, error) {
	key := fmt.Sprintf("video:%s:%s", lang, input)
	if cached, err := e.cache.Get(ctx, key); err == nil {
		e.logger.Debug("Video evidence cache hit", zap.String("url", input))
		return cached, nil
	}

	bundle := &core.EvidenceBundle{URL: input, FetchedAt: time.Now()}

	if title, author, ok := e.fetchOEmbed(ctx, input); ok {
		bundle.Title = title
		bundle.Author = author
	}
	e.fillFromHTML(ctx, input, lang, bundle)

	bundle.SourceText = buildSourceText(e.textProcessor, bundle)

	if err := e.cache.Set(ctx, key, bundle, e.cacheTTL); err != nil {
		e.logger.Warn("Failed to cache video evidence", zap.Error(err))
	}
	return bundle, nil
}

// fetchOEmbed asks the oEmbed endpoint for title and channel name. Uses its
// own short timeout so a slow metadata service never stalls the request.
func (e *VideoExtractor) fetchOEmbed(ctx context.Context, videoURL string) (title, author string, ok bool) {
	q := url.Values{}
	q.Set("url", videoURL)
	q.Set("format", "json")

	body, err := e.fetcher.Get(ctx, oembedEndpoint+"?"+q.Encode(), fetch.Options{}, e.oembedTimeout)
	if err != nil {
		e.logger.Debug("oEmbed lookup failed", zap.String("url", videoURL), zap.Error(err))
		return "", "", false
	}

	var meta struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		e.logger.Debug("oEmbed response malformed", zap.Error(err))
		return "", "", false
	}
	return meta.Title, meta.AuthorName, true
}

// fillFromHTML recovers the description from the page script blob and fills
// any title/author field oEmbed left empty. Best-effort only.
func (e *VideoExtractor) fillFromHTML(ctx context.Context, videoURL, lang string, bundle *core.EvidenceBundle) {
	opts := fetch.Options{
		Headers: map[string]string{
			"Accept-Language": acceptLanguage(lang),
		},
	}
	body, err := e.fetcher.Get(ctx, videoURL, opts, e.htmlTimeout)
	if err != nil {
		e.logger.Debug("Video HTML fetch failed", zap.String("url", videoURL), zap.Error(err))
		return
	}
	html := string(body)

	if m := shortDescriptionRe.FindStringSubmatch(html); len(m) > 1 {
		bundle.Description = decodeJSONString(m[1])
	}
	if bundle.Title == "" {
		if m := htmlTitleRe.FindStringSubmatch(html); len(m) > 1 {
			bundle.Title = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), "- YouTube"))
		}
	}
	if bundle.Author == "" {
		if m := authorRe.FindStringSubmatch(html); len(m) > 1 {
			bundle.Author = decodeJSONString(m[1])
		}
	}
}

// acceptLanguage maps the caller's language hint to a browser-style header.
func acceptLanguage(lang string) string {
	if lang == "en" {
		return "en-US,en;q=0.9"
	}
	return "ko-KR,ko;q=0.9,en;q=0.5"
}

// decodeJSONString resolves backslash escapes captured from script JSON.
func decodeJSONString(raw string) string {
	var decoded string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &decoded); err != nil {
		return raw
	}
	return decoded
}
