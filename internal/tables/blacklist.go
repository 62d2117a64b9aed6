package tables

// Blacklist returns the prohibited-substance and scam-pattern keywords.
// A single case-insensitive substring match against the combined evidence
// and candidate text forces the whole analysis to a zero score.
func Blacklist() []string {
	return []string{
		// Controlled and prohibited substances.
		"마약", "대마초", "필로폰", "히로뽕", "엑스터시", "케타민",
		"아편", "코카인", "헤로인", "신종마약", "임시마약류",
		"스테로이드 직구", "무허가 의약품", "불법 의약품", "처방전 없이 전문의약품",
		"cocaine", "heroin", "methamphetamine", "mdma", "illegal drug",
		// Scam patterns.
		"다단계 사기", "폰지", "원금 보장 고수익", "피싱 사이트",
		"ponzi scheme", "phishing scam", "advance fee",
	}
}

// GateTerms returns the absolute-claim and illegality terms that trigger the
// conservative red-flag gate: when any of these appears in the combined step
// reasons and evidence, the expression and efficacy scores are capped at 2.
func GateTerms() []string {
	return []string{
		"완치", "만병통치", "100%", "부작용 전혀 없", "무조건 효과",
		"불법", "다단계", "피싱",
		"cures completely", "100% guaranteed", "miracle cure",
		"illegal", "pyramid scheme", "phishing",
	}
}
