package test

import (
	"math/rand"
	"sync"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var source = struct {
	sync.Mutex
	*rand.Rand
}{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}

// RandomASCIIString returns a pseudo-random alphanumeric string whose length
// falls within [minLen, maxLen]. Equal bounds give an exact length, which is
// how tests build payloads right at a size limit.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	source.Lock()
	defer source.Unlock()

	length := minLen
	if maxLen > minLen {
		length += source.Intn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphabet[source.Intn(len(alphabet))]
	}
	return string(buf)
}
