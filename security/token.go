package security

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
)

const (
	verificationTokenBytes = 16

	// Letters, digits and punctuation, matching what users get mailed
	// as a temporary password after a reset
	tempPasswordCharset = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789" +
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	TempPasswordLength = 10
)

// MakeVerificationToken returns a 32-character hex token (128 bits of
// entropy) used to prove control of an email address
func MakeVerificationToken() (string, error) {
	b := make([]byte, verificationTokenBytes)

	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// MakeTempPassword returns an n-character password drawn from letters,
// digits and punctuation. It is meant to be changed by the user right
// after login, so a seeded PRNG is enough here
func MakeTempPassword(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tempPasswordCharset[mrand.IntN(len(tempPasswordCharset))]
	}

	return string(b)
}
