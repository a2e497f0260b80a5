package session

import "github.com/phrazzld/hececiz/internal/domain"

// Ledger counts the successes of one session. Both counters only grow.
type Ledger struct {
	UnassistedCorrect int `json:"unassisted_correct"`
	AssistedCorrect   int `json:"assisted_correct"`
}

// Record credits one success to the bucket selected by assisted and returns
// that bucket.
func (l *Ledger) Record(assisted bool) domain.ProgressBucket {
	if assisted {
		l.AssistedCorrect++
	} else {
		l.UnassistedCorrect++
	}
	return domain.BucketFor(assisted)
}

// Total is the number of successes in either bucket.
func (l Ledger) Total() int {
	return l.UnassistedCorrect + l.AssistedCorrect
}
