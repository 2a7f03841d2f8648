package fetch

// verdict classifies the outcome of one attempt.
type verdict int

const (
	verdictOK verdict = iota
	verdictBlocked
	verdictBadStatus
	verdictNetError
	verdictNoAnchor
)

func (v verdict) String() string {
	switch v {
	case verdictOK:
		return "ok"
	case verdictBlocked:
		return "blocked"
	case verdictBadStatus:
		return "bad_status"
	case verdictNetError:
		return "net_error"
	case verdictNoAnchor:
		return "no_anchor"
	}
	return "unknown"
}

// step is what the retry policy tells the fetch loop to do next.
type step int

const (
	stepDone step = iota
	stepRetry
	stepFail
)

// decide is the whole retry policy: pure, so the backoff/threshold
// behavior is testable without a network.
func decide(v verdict, attempt, maxAttempts int) step {
	if v == verdictOK {
		return stepDone
	}
	if attempt >= maxAttempts {
		return stepFail
	}
	return stepRetry
}
