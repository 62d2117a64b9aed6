// Package classify decides which content category a free-form input string
// belongs to. Classification is a pure function over the input; the domain
// lists are injected data so tests can substitute them.
package classify

import (
	"net/url"
	"strings"

	"github.com/joojungwoo/yakson/internal/core"
)

// maxNameTokens bounds how many whitespace-delimited tokens a bare product
// name may contain before the input is treated as free-form text.
const maxNameTokens = 20

// linkMarkers are substrings whose presence disqualifies an input from being
// a bare product name.
var linkMarkers = []string{
	"http://", "https://", "www.",
	".com", ".net", ".co.kr", ".kr", ".shop", ".ly", ".me",
}

// Domains configures the recognized host lists and URL shape patterns.
type Domains struct {
	// VideoHosts are matched by host suffix.
	VideoHosts []string
	// CommerceHosts are matched by host suffix.
	CommerceHosts []string
	// ProductPaths marks product-detail pages; it overrides SearchPaths.
	ProductPaths []string
	// SearchPaths marks search/category/listing pages, which are rejected
	// as non-commerce to keep colliding cache keys out of the pipeline.
	SearchPaths []string
	// ProductIDParams are query parameters that identify a product even
	// without a product path.
	ProductIDParams []string
}

// DefaultDomains returns the closed set of known video and commerce domains.
func DefaultDomains() Domains {
	return Domains{
		VideoHosts: []string{"youtube.com", "youtu.be"},
		CommerceHosts: []string{
			"coupang.com", "gmarket.co.kr", "11st.co.kr", "auction.co.kr",
			"smartstore.naver.com", "brand.naver.com", "oliveyoung.co.kr",
		},
		ProductPaths: []string{
			"/vp/products/", "/item", "/products/", "/store/goods/getgoodsdetail",
		},
		SearchPaths: []string{
			"/np/search", "/np/categories", "/search", "/category", "/list",
			"/best", "/display",
		},
		ProductIDParams: []string{
			"itemid", "vendoritemid", "goodscode", "prdno",
			"itemno", "goodsno",
		},
	}
}

// Classifier assigns a ContentType to raw input.
type Classifier struct {
	domains Domains
}

// New creates a classifier over the given domain configuration.
func New(domains Domains) *Classifier {
	return &Classifier{domains: domains}
}

// Classify applies the category rules in strict precedence order: video,
// commerce product page, bare product name, free-form text. Ambiguous
// commerce URLs (listing or search pages) deliberately fall through to
// free-form.
func (c *Classifier) Classify(input string) core.ContentType {
	trimmed := strings.TrimSpace(input)

	if u := parseCandidateURL(trimmed); u != nil {
		host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
		if hostMatches(host, c.domains.VideoHosts) {
			return core.ContentVideo
		}
		if hostMatches(host, c.domains.CommerceHosts) && c.isProductPage(u) {
			return core.ContentCommerce
		}
	}

	if !containsLinkMarker(trimmed) && len(strings.Fields(trimmed)) < maxNameTokens {
		return core.ContentProductName
	}
	return core.ContentFreeform
}

// isProductPage decides whether a recognized commerce URL points at a
// product-detail page. A product path wins over the search exclusion; a
// product-ID query parameter is accepted on its own; everything else is
// rejected as non-commerce.
func (c *Classifier) isProductPage(u *url.URL) bool {
	path := strings.ToLower(u.EscapedPath())
	for _, p := range c.domains.ProductPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	for _, p := range c.domains.SearchPaths {
		if strings.Contains(path, p) {
			return false
		}
	}
	query := u.Query()
	for key := range query {
		lower := strings.ToLower(key)
		for _, p := range c.domains.ProductIDParams {
			if lower == p {
				return true
			}
		}
	}
	return false
}

// parseCandidateURL parses input as a URL when it plausibly is one. Inputs
// with embedded whitespace are never URLs here.
func parseCandidateURL(input string) *url.URL {
	if input == "" || strings.ContainsAny(input, " \t\n") {
		return nil
	}
	if !strings.Contains(input, ".") {
		return nil
	}
	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" || !strings.Contains(u.Hostname(), ".") {
		return nil
	}
	return u
}

func hostMatches(host string, suffixes []string) bool {
	for _, s := range suffixes {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}

func containsLinkMarker(input string) bool {
	lower := strings.ToLower(input)
	for _, m := range linkMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
