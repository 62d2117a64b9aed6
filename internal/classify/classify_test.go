package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joojungwoo/yakson/internal/core"
)

func TestClassify(t *testing.T) {
	c := New(DefaultDomains())

	tests := []struct {
		name  string
		input string
		want  core.ContentType
	}{
		{"youtube watch url", "https://www.youtube.com/watch?v=abc123", core.ContentVideo},
		{"youtube short link", "https://youtu.be/abc123", core.ContentVideo},
		{"youtube without scheme", "youtube.com/watch?v=abc123", core.ContentVideo},
		{"coupang product page", "https://www.coupang.com/vp/products/123?itemId=1", core.ContentCommerce},
		{"coupang mobile product page", "https://m.coupang.com/vp/products/123", core.ContentCommerce},
		{"gmarket item page", "https://item.gmarket.co.kr/Item?goodscode=555", core.ContentCommerce},
		{"smartstore product page", "https://smartstore.naver.com/brandshop/products/456", core.ContentCommerce},
		{"commerce url with product id param only", "https://www.11st.co.kr/main?prdNo=777", core.ContentCommerce},
		{"coupang search page falls through", "https://www.coupang.com/np/search?q=vitamin", core.ContentFreeform},
		{"coupang category page falls through", "https://www.coupang.com/np/categories/194176", core.ContentFreeform},
		{"unknown shop url falls through", "https://tinyshop.example/products/1", core.ContentFreeform},
		{"bare korean product name", "정관장 홍삼정 에브리타임", core.ContentProductName},
		{"bare english product name", "Centrum Multivitamin for Men", core.ContentProductName},
		{"name with domain marker rejected", "홍삼정 구매는 example.com 에서", core.ContentFreeform},
		{"long freeform text", "이 제품 진짜 좋아요 완전 추천 대박 최고 짱 굿 강추 추천템 인생템 필수템 꿀템 갓성비 역대급 레전드 미쳤다 찐이다 굿굿 최고최고", core.ContentFreeform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input))
		})
	}
}

func TestClassifyVideoWinsOverCommerceShape(t *testing.T) {
	c := New(DefaultDomains())
	// A video host with a commerce-looking path is still video.
	assert.Equal(t, core.ContentVideo, c.Classify("https://www.youtube.com/products/123"))
}

func TestClassifyProductPathOverridesSearchExclusion(t *testing.T) {
	c := New(DefaultDomains())
	got := c.Classify("https://www.coupang.com/vp/products/123/search?q=x")
	assert.Equal(t, core.ContentCommerce, got)
}

func TestClassifyEmptyInput(t *testing.T) {
	c := New(DefaultDomains())
	assert.Equal(t, core.ContentProductName, c.Classify(""))
}
