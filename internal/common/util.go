package common

// WipeByteArray zeroes a sensitive buffer (e.g. a password) in place.
// Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
