package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCoupangProductPage(t *testing.T) {
	got := Normalize("https://www.coupang.com/vp/products/123?itemId=1&vendorItemId=2&utm_source=x")
	assert.Equal(t, "https://m.coupang.com/vp/products/123?itemId=1&vendorItemId=2", got)
}

func TestNormalizeCoupangParamOrderIrrelevant(t *testing.T) {
	a := Normalize("https://www.coupang.com/vp/products/123?vendorItemId=2&itemId=1")
	b := Normalize("https://www.coupang.com/vp/products/123?itemId=1&vendorItemId=2")
	assert.Equal(t, a, b)
}

func TestNormalizeCoupangDropsTrackingParams(t *testing.T) {
	got := Normalize("https://www.coupang.com/vp/products/99?itemId=5&q=%EC%98%81%EC%96%91%EC%A0%9C&rank=3")
	assert.Equal(t, "https://m.coupang.com/vp/products/99?itemId=5", got)
}

func TestNormalizeCoupangSearchPageUnchanged(t *testing.T) {
	raw := "https://www.coupang.com/np/search?q=vitamin"
	assert.Equal(t, raw, Normalize(raw))
}

func TestNormalizeCoupangSearchAndProductNeverCollide(t *testing.T) {
	search := Normalize("https://www.coupang.com/np/search?q=vitamin&itemId=1")
	product := Normalize("https://www.coupang.com/vp/products/123?itemId=1")
	assert.NotEqual(t, search, product)
}

func TestNormalizeGmarketKeepsGoodscode(t *testing.T) {
	got := Normalize("https://item.gmarket.co.kr/Item?goodscode=555&jaehuid=200")
	assert.Equal(t, "https://item.gmarket.co.kr/Item?goodscode=555", got)
}

func TestNormalizeGmarketNonProductCollapsesToRoot(t *testing.T) {
	got := Normalize("https://www.gmarket.co.kr/n/best?groupCode=100")
	assert.Equal(t, "https://www.gmarket.co.kr/", got)
}

func TestNormalizeUnknownHostUnchanged(t *testing.T) {
	raw := "https://example.com/products/1?a=b"
	assert.Equal(t, raw, Normalize(raw))
}

func TestNormalizeUnparseableInputUnchanged(t *testing.T) {
	raw := "not a url at all"
	assert.Equal(t, raw, Normalize(raw))
}

func TestIsProductKey(t *testing.T) {
	assert.True(t, IsProductKey("https://m.coupang.com/vp/products/123?itemId=1"))
	assert.True(t, IsProductKey("https://item.gmarket.co.kr/Item?goodscode=555"))
	assert.False(t, IsProductKey("https://www.gmarket.co.kr/"))
	assert.False(t, IsProductKey("https://www.coupang.com/np/search?q=vitamin"))
	assert.False(t, IsProductKey("https://example.com/products/1"))
}
