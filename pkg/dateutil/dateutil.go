package dateutil

import "time"

// SplitMinutes breaks a duration into whole minutes and leftover seconds for
// countdown replies.
func SplitMinutes(d time.Duration) (int, int) {
	if d < 0 {
		d = 0
	}

	secs := int(d.Seconds())
	return secs / 60, secs % 60
}

// MinutePastHour returns how long from now until the wall clock next reads
// the given minute past the hour in the provided location.
func MinutePastHour(now time.Time, minute int, loc *time.Location) time.Duration {
	delay := (60 + minute - now.In(loc).Minute()) % 60
	return time.Duration(delay) * time.Minute
}
