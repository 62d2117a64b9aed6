package normalize

import (
	"encoding/json"
	"strings"

	"github.com/joojungwoo/yakson/internal/core"
)

// coerceSteps builds the eight step results from whatever the candidate
// carried. Candidate steps are matched by key first, then by position;
// anything missing defaults to zero. Empty evidence falls back to
// structured-looking lines of the source text.
func (n *ScoreNormalizer) coerceSteps(
	cand *core.Candidate,
	evidence *core.EvidenceBundle,
	labels map[string]string,
) [core.NumSteps]core.StepResult {
	byKey := make(map[string]core.CandidateStep, len(cand.Steps))
	for _, s := range cand.Steps {
		key := strings.TrimSpace(s.Key)
		if key == "" {
			continue
		}
		if _, dup := byKey[key]; !dup {
			byKey[key] = s
		}
	}

	var fallback []string
	var steps [core.NumSteps]core.StepResult
	for i, key := range core.StepKeys {
		raw, ok := byKey[key]
		if !ok && i < len(cand.Steps) && strings.TrimSpace(cand.Steps[i].Key) == "" {
			// Schema-violating responses often omit keys but keep order.
			raw = cand.Steps[i]
			ok = true
		}

		step := core.StepResult{Key: key, Label: labels[key]}
		if ok {
			step.Score = coerceScore(raw.Score)
			step.Reason = strings.TrimSpace(raw.Reason)
			step.Evidence = coerceEvidence(raw.Evidence)
		}
		if len(step.Evidence) == 0 {
			if fallback == nil {
				fallback = sourceTextEvidence(evidence.SourceText)
			}
			step.Evidence = fallback
		}
		steps[i] = step
	}
	return steps
}

// coerceEvidence accepts a JSON array of strings, a bare string, or garbage,
// and always returns at most maxEvidenceLines strings.
func coerceEvidence(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, maxEvidenceLines)
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			out = append(out, item)
			if len(out) == maxEvidenceLines {
				break
			}
		}
		return out
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		single = strings.TrimSpace(single)
		if single == "" {
			return nil
		}
		return []string{single}
	}
	return nil
}

// sourceTextEvidence picks up to maxEvidenceLines lines of the source text
// that begin with a recognized field label.
func sourceTextEvidence(sourceText string) []string {
	var out []string
	for _, line := range strings.Split(sourceText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, label := range evidenceLabels {
			if strings.HasPrefix(line, label) {
				out = append(out, line)
				break
			}
		}
		if len(out) == maxEvidenceLines {
			break
		}
	}
	return out
}

// applyGate caps the expression and efficacy scores when the combined step
// text carries an absolute claim or illegality term. The gate runs before
// floors on purpose: a trusted-brand floor may still raise a gated score.
func (n *ScoreNormalizer) applyGate(steps *[core.NumSteps]core.StepResult) {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(s.Reason)
		b.WriteByte('\n')
		for _, e := range s.Evidence {
			b.WriteString(e)
			b.WriteByte('\n')
		}
	}
	combined := strings.ToLower(b.String())

	fired := false
	for _, term := range n.gateTerms {
		if strings.Contains(combined, term) {
			fired = true
			break
		}
	}
	if !fired {
		return
	}

	for i, key := range core.StepKeys {
		if key == core.StepExpression || key == core.StepEfficacy {
			if steps[i].Score > gateCeiling {
				steps[i].Score = gateCeiling
			}
		}
	}
}

// applyFloors raises step scores to the per-category, per-tier floor when a
// trust signal fired. For product_itself, call_to_action and visual are
// forced to exactly zero: those dimensions are not applicable there, so the
// zero is an override, not a floor.
func (n *ScoreNormalizer) applyFloors(steps *[core.NumSteps]core.StepResult, adType core.AdType, flags core.TrustFlags) {
	floorTier := flags.Tier
	if floorTier == core.TierUnknown {
		if !flags.IsOfficialChannel && !flags.IsTrustedSeller {
			floorTier = ""
		} else {
			floorTier = core.TierKnownMid
		}
	}

	if floorTier != "" {
		if row, ok := n.floors[adType][floorTier]; ok {
			for i := range steps {
				if steps[i].Score < row[i] {
					steps[i].Score = row[i]
				}
			}
		}
	}

	if adType == core.AdProductItself {
		for i, key := range core.StepKeys {
			if key == core.StepCallToAction || key == core.StepVisual {
				steps[i].Score = 0
			}
		}
	}
}

// applyCaps clamps every step to its per-category upper bound. Caps run
// strictly after floors; a floor exceeding its cap is clamped down here.
func (n *ScoreNormalizer) applyCaps(steps *[core.NumSteps]core.StepResult, adType core.AdType) {
	caps, ok := n.caps[adType]
	if !ok {
		caps = n.caps[core.AdUnknown]
	}
	for i := range steps {
		steps[i].Score = clamp(steps[i].Score, 0, caps[i])
	}
}

// zeroedResult is the terminal blacklist outcome: every step zeroed with a
// uniform reason and the matched keyword surfaced as evidence.
func (n *ScoreNormalizer) zeroedResult(
	input, lang, keyword string,
	contentType core.ContentType,
	adType core.AdType,
	labels map[string]string,
) *core.AnalysisResult {
	reason := "금지 품목 또는 사기 패턴이 감지되었습니다"
	if lang == "en" {
		reason = "prohibited or scam content detected"
	}

	var steps [core.NumSteps]core.StepResult
	for i, key := range core.StepKeys {
		steps[i] = core.StepResult{
			Key:      key,
			Label:    labels[key],
			Score:    0,
			Reason:   reason,
			Evidence: []string{keyword},
		}
	}

	return &core.AnalysisResult{
		Input:       input,
		ContentType: contentType,
		AdType:      adType,
		Tier:        core.TierUnknown,
		Steps:       steps,
		TotalScore:  0,
		Safety:      core.SafetyRisk,
		Badges:      []string{"blacklisted"},
		Lang:        lang,
		AnalyzedAt:  timeNow(),
	}
}
