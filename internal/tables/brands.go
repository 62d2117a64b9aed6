// Package tables holds the static lookup data the trust pipeline depends on:
// brand alias tables, prohibited-content keywords, red-flag gate terms, and
// the per-category score floors and caps. Everything here is immutable
// configuration handed to components at startup, never mutated at runtime.
package tables

// BrandTable maps a canonical brand name to its textual aliases. Alias
// matching is case-insensitive substring search, so aliases should be long
// enough not to collide with everyday words.
type BrandTable map[string][]string

// TopCorpBrands returns the top-tier corporate brand table.
func TopCorpBrands() BrandTable {
	return BrandTable{
		"삼성":     {"삼성", "samsung"},
		"LG":     {"엘지", "lg생활건강", "lg전자", "lg "},
		"아모레퍼시픽": {"아모레퍼시픽", "amorepacific", "아모레"},
		"CJ제일제당": {"씨제이", "cj제일제당", "cj "},
		"롯데":     {"롯데", "lotte"},
		"유한양행":   {"유한양행", "yuhan"},
		"동아제약":   {"동아제약", "동아에스티", "dong-a"},
		"종근당":    {"종근당", "chong kun dang", "ckd"},
		"한국인삼공사": {"정관장", "한국인삼공사", "kgc"},
		"풀무원":    {"풀무원", "pulmuone"},
		"오뚜기":    {"오뚜기", "ottogi"},
		"농심":     {"농심", "nongshim"},
	}
}

// MidTierBrands returns the known mid-tier brand table.
func MidTierBrands() BrandTable {
	return BrandTable{
		"닥터자르트":  {"닥터자르트", "dr.jart", "drjart"},
		"이니스프리":  {"이니스프리", "innisfree"},
		"메디힐":    {"메디힐", "mediheal"},
		"고려은단":   {"고려은단", "korea eundan"},
		"뉴트리원":   {"뉴트리원", "nutrione"},
		"종근당건강":  {"종근당건강", "락토핏", "lactofit"},
		"일양약품":   {"일양약품", "ilyang"},
		"셀렉스":    {"셀렉스", "selex"},
		"에스더포뮬러": {"에스더포뮬러", "esthermall", "여에스더"},
	}
}

// OTCBrands returns the over-the-counter medicine brand table. OTC names
// rank above mid-tier at scoring time even though this table is scanned last
// during canonicalization.
func OTCBrands() BrandTable {
	return BrandTable{
		"타이레놀": {"타이레놀", "tylenol"},
		"게보린":  {"게보린"},
		"판피린":  {"판피린"},
		"판콜":   {"판콜"},
		"베아제":  {"베아제"},
		"훼스탈":  {"훼스탈"},
		"정로환":  {"정로환"},
		"우루사":  {"우루사", "urusa"},
		"박카스":  {"박카스", "bacchus"},
		"이지엔":  {"이지엔6", "이지엔"},
		"탁센":   {"탁센"},
	}
}

// OfficialChannelMarkers returns substrings whose presence in the evidence
// text indicates an official brand channel (e.g. a verified brand account or
// a flagship store page).
func OfficialChannelMarkers() []string {
	return []string{
		"공식 채널", "공식채널", "공식 계정", "공식 스토어", "공식스토어",
		"공식 홈페이지", "브랜드관", "본사 직영", "직영몰",
		"official store", "official channel", "flagship store",
	}
}

// TrustedSellerNames returns seller names treated as reputable first-party
// retail channels.
func TrustedSellerNames() []string {
	return []string{
		"쿠팡", "로켓배송", "롯데온", "신세계몰", "이마트몰", "현대백화점",
		"올리브영", "지마켓 공식", "쓱닷컴", "ssg.com",
	}
}
