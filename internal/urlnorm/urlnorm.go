// Package urlnorm canonicalizes commerce URLs into stable cache keys.
// The normalized form is used only as a key: network I/O always uses the
// original URL unless normalization positively identified a product page.
package urlnorm

import (
	"net/url"
	"strings"
)

const (
	coupangMobileHost  = "m.coupang.com"
	coupangProductPath = "/vp/products/"
	gmarketProductPath = "/item"
)

// Normalize rewrites recognized commerce URLs to a canonical form:
//
//   - Coupang product-detail pages move to the mobile host and keep only the
//     itemId and vendorItemId parameters. Every other Coupang path is
//     returned unmodified so distinct search and category pages never
//     collapse into one cache entry.
//   - Gmarket URLs keep only the goodscode parameter; non-product paths are
//     collapsed to root, sharing one cache entry for fungible non-product
//     pages.
//   - Everything else is returned unmodified.
//
// Normalization never fails: any parse problem returns the input unchanged.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	switch {
	case host == "coupang.com" || strings.HasSuffix(host, ".coupang.com"):
		return normalizeCoupang(u, raw)
	case host == "gmarket.co.kr" || strings.HasSuffix(host, ".gmarket.co.kr"):
		return normalizeGmarket(u)
	default:
		return raw
	}
}

// IsProductKey reports whether a normalized URL positively identifies a
// product-detail page, meaning the normalized form is safe to fetch directly.
func IsProductKey(normalized string) bool {
	u, err := url.Parse(normalized)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.EscapedPath())
	return strings.Contains(path, coupangProductPath) ||
		(strings.Contains(path, gmarketProductPath) && u.Query().Get("goodscode") != "")
}

func normalizeCoupang(u *url.URL, raw string) string {
	if !strings.HasPrefix(strings.ToLower(u.EscapedPath()), coupangProductPath) {
		return raw
	}

	kept := url.Values{}
	q := u.Query()
	for _, key := range []string{"itemId", "vendorItemId"} {
		if v := q.Get(key); v != "" {
			kept.Set(key, v)
		}
	}

	out := url.URL{
		Scheme:   "https",
		Host:     coupangMobileHost,
		Path:     u.Path,
		RawQuery: kept.Encode(),
	}
	return out.String()
}

func normalizeGmarket(u *url.URL) string {
	kept := url.Values{}
	if v := u.Query().Get("goodscode"); v != "" {
		kept.Set("goodscode", v)
	}

	path := u.Path
	if !strings.Contains(strings.ToLower(u.EscapedPath()), gmarketProductPath) {
		path = "/"
	}

	out := url.URL{
		Scheme:   "https",
		Host:     strings.ToLower(u.Host),
		Path:     path,
		RawQuery: kept.Encode(),
	}
	return out.String()
}
