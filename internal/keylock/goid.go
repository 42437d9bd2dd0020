package keylock

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the runtime's ID for the calling goroutine,
// parsed from the stack trace header ("goroutine 123 [running]:").
// The runtime offers no public accessor; the header format has been
// stable across Go releases and this is only used to detect reentrant
// registration, never for scheduling decisions.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	s := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}

	id, err := strconv.ParseUint(string(s), 10, 64)
	if err != nil {
		panic("keylock: cannot parse goroutine ID from stack header")
	}
	return id
}
