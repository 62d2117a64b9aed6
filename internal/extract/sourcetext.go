// Package extract gathers contextual evidence about video and commerce
// references. Every network step is best-effort: failures degrade to thinner
// bundles, never to request-fatal errors.
package extract

import (
	"strings"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/utils"
)

// MaxSourceText is the hard upper bound on an evidence bundle's source text.
// It is a contract with the scoring side: this text is the only material the
// LLM sees.
const MaxSourceText = 8000

// buildSourceText concatenates the populated bundle fields into the
// deterministic, line-oriented block the LLM reasons from. Line labels are
// fixed; the normalizer's evidence fallback recognizes them.
func buildSourceText(tp *utils.TextProcessor, b *core.EvidenceBundle) string {
	var lines []string
	add := func(label, value string) {
		value = strings.TrimSpace(value)
		if value != "" {
			lines = append(lines, label+" "+value)
		}
	}

	add("제목:", b.Title)
	add("채널:", b.Author)
	add("상품명:", b.ProductName)
	add("상품ID:", b.ProductID)
	add("판매자:", b.Seller)
	add("설명:", b.Description)
	add("URL:", b.URL)

	return tp.ProcessText(strings.Join(lines, "\n"), MaxSourceText)
}
