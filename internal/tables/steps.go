package tables

import "github.com/joojungwoo/yakson/internal/core"

// StepLabels returns the display label for each step key in the given
// language. Unknown languages fall back to Korean, the service default.
func StepLabels(lang string) map[string]string {
	if lang == "en" {
		return map[string]string{
			core.StepIdentification: "Product identification",
			core.StepBrand:          "Brand trust",
			core.StepSeller:         "Seller trust",
			core.StepExpression:     "Expression soundness",
			core.StepEfficacy:       "Efficacy claims",
			core.StepCallToAction:   "Purchase pressure",
			core.StepVisual:         "Visual signals",
			core.StepConsistency:    "Information consistency",
		}
	}
	return map[string]string{
		core.StepIdentification: "제품 정보 확인",
		core.StepBrand:          "브랜드 신뢰도",
		core.StepSeller:         "판매처 신뢰도",
		core.StepExpression:     "표현 건전성",
		core.StepEfficacy:       "효능 주장",
		core.StepCallToAction:   "구매 유도 강도",
		core.StepVisual:         "시각적 신호",
		core.StepConsistency:    "정보 일관성",
	}
}
