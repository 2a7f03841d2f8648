package skills

// MatchResult is the overlap between a candidate's skills and a
// posting's requirements.
type MatchResult struct {
	// Intersection of the two sets.
	Common Set
	// |intersection| / |posting skills|, in [0,1].
	Score float64
}

// Match computes the intersection and the relevance score.
// Deterministic: same inputs always give the same result.
func Match(candidate, posting Set) MatchResult {
	common := Set{}
	for skill := range posting {
		if _, ok := candidate[skill]; ok {
			common[skill] = struct{}{}
		}
	}

	denom := len(posting)
	if denom < 1 {
		denom = 1
	}
	score := float64(len(common)) / float64(denom)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return MatchResult{Common: common, Score: score}
}
