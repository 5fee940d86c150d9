// Package idgen generates the time-based entity identifiers used across
// the record store, e.g. "PAT1756713600123" or "PAT1756713600123-2" when
// two IDs land on the same millisecond.
package idgen

import (
	"fmt"
	"sync"
	"time"
)

var (
	mu        sync.Mutex
	lastMs    int64
	sameMsSeq int
)

// New returns a prefixed unix-millisecond identifier. Prefixes in use:
// USR, PAT, DOC, HSP, NFC, CON, EMG.
func New(prefix string) string {
	mu.Lock()
	defer mu.Unlock()

	ms := time.Now().UnixMilli()
	if ms == lastMs {
		sameMsSeq++
		return fmt.Sprintf("%s%d-%d", prefix, ms, sameMsSeq)
	}
	lastMs = ms
	sameMsSeq = 0
	return fmt.Sprintf("%s%d", prefix, ms)
}
