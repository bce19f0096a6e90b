package stickynotes

import "crypto/rand"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// IDLength is the number of characters in a note id.
	IDLength = 16

	// Largest multiple of len(idAlphabet) that fits in a byte; bytes at or
	// above it are discarded to keep the distribution uniform.
	idByteLimit = 256 - 256%len(idAlphabet)
)

// NewID returns a random id of IDLength characters from [A-Za-z0-9].
func NewID() (string, error) {
	id := make([]byte, 0, IDLength)
	buf := make([]byte, IDLength+IDLength/2)
	for len(id) < IDLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= idByteLimit {
				continue
			}
			id = append(id, idAlphabet[int(b)%len(idAlphabet)])
			if len(id) == IDLength {
				break
			}
		}
	}
	return string(id), nil
}
