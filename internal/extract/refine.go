package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// nameKeyRe matches common embedded-JSON product name fields inside raw HTML.
var nameKeyRe = regexp.MustCompile(`"(?:productName|goodsName|itemName|displayName)"\s*:\s*"((?:[^"\\]|\\.)+)"`)

// bracketRe strips bracketed SKU / item-number annotations.
var bracketRe = regexp.MustCompile(`\[[^\]]*\]`)

// nameDelimiters separate a product name from appended site chrome.
var nameDelimiters = []string{" - ", " | ", " :: ", " – ", " — "}

// siteBoilerplate lists per-domain chrome words that never belong to a
// product name.
var siteBoilerplate = []string{
	"쿠팡!", "쿠팡", "coupang", "로켓배송",
	"g마켓", "gmarket", "지마켓",
	"11번가", "옥션", "auction",
	"네이버 쇼핑", "네이버쇼핑", "스마트스토어",
	"올리브영", "oliveyoung",
}

// RefineName derives a clean product name from the available candidates, in
// fixed precedence: embedded-JSON name fields in the raw HTML, the social
// preview title, the first heading, then the page title. The first candidate
// that survives cleaning wins; an empty string means none did.
func RefineName(ogTitle, heading, pageTitle, rawHTML string) string {
	candidates := []string{
		embeddedJSONName(rawHTML),
		ogTitle,
		heading,
		pageTitle,
	}
	for _, cand := range candidates {
		if cleaned := CleanName(cand); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// CleanName strips site chrome from a raw title candidate: delimiter-split
// suffixes (keeping the longest segment), per-domain boilerplate tokens,
// bracketed SKU annotations, and stray separator punctuation.
func CleanName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	for _, delim := range nameDelimiters {
		if !strings.Contains(name, delim) {
			continue
		}
		longest := ""
		for _, part := range strings.Split(name, delim) {
			part = strings.TrimSpace(part)
			if len(part) > len(longest) {
				longest = part
			}
		}
		name = longest
	}

	lower := strings.ToLower(name)
	for _, token := range siteBoilerplate {
		for {
			idx := strings.Index(lower, strings.ToLower(token))
			if idx < 0 {
				break
			}
			name = name[:idx] + name[idx+len(token):]
			lower = strings.ToLower(name)
		}
	}

	name = bracketRe.ReplaceAllString(name, " ")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, "-|:·,~ \t")

	return strings.TrimSpace(name)
}

// embeddedJSONName pulls the first product-name-looking field out of inline
// script JSON, decoding JSON string escapes.
func embeddedJSONName(rawHTML string) string {
	m := nameKeyRe.FindStringSubmatch(rawHTML)
	if len(m) < 2 {
		return ""
	}
	var decoded string
	if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &decoded); err != nil {
		return m[1]
	}
	return decoded
}
