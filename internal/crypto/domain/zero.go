package domain

// Zero overwrites key material or plaintext in place once it is no longer needed.
func Zero(b []byte) {
	clear(b)
}
