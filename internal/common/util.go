package common

// WipeByteArray overwrites the slice with zeros. Used to remove passwords
// from memory once they have been hashed or sent.
//
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
