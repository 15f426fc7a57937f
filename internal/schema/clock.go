package schema

import "time"

// Clock supplies event timestamps to the normalization layer.
type Clock interface {
	TimestampNS() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// TimestampNS returns the current UTC time in nanoseconds.
func (SystemClock) TimestampNS() int64 {
	return time.Now().UTC().UnixNano()
}
