package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Generator hands out unique transaction IDs of the form
// "20250131-154502-001": the wall-clock second plus a sequence that
// disambiguates transactions created within the same second.
type Generator struct {
	lastSecond int64
	seq        int
}

const stampFormat = "20060102-150405"

// Seed primes the generator past an already issued ID so a new
// generator started over an existing log never repeats one.
func (g *Generator) Seed(ts time.Time, seq int) {
	g.lastSecond = ts.Unix()
	g.seq = seq
}

// Next returns a fresh ID for the given creation time. IDs issued by one
// Generator are unique as long as the clock does not step backwards
// across whole seconds.
func (g *Generator) Next(now time.Time) string {
	sec := now.Unix()
	if sec == g.lastSecond {
		g.seq++
	} else {
		g.lastSecond = sec
		g.seq = 1
	}
	return fmt.Sprintf("%s-%03d", now.Format(stampFormat), g.seq)
}

// Parse extracts the creation time and sequence from a transaction ID.
func Parse(txID string) (ts time.Time, seq int, err error) {
	i := strings.LastIndex(txID, "-")
	if i < 0 {
		return time.Time{}, 0, fmt.Errorf("invalid transaction ID format: %q", txID)
	}

	ts, err = time.ParseInLocation(stampFormat, txID[:i], time.Local)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid timestamp in ID %q: %w", txID, err)
	}

	seq, err = strconv.Atoi(txID[i+1:])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in ID %q: %w", txID, err)
	}

	return ts, seq, nil
}
