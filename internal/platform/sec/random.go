// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// tempPasswordAlphabet deliberately drops visually confusable characters
// (I, O, 0, 1, l) since temporary passwords are read out to players over chat.
const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789!@#$%^&*"

// GenerateTempPassword returns a random temporary password of the given length.
//
// Used by the password-reset actions on the admin and super-admin screens;
// the generated value is shown once and must be changed by the account holder.
func GenerateTempPassword(length int) (string, error) {
	return RandomString(tempPasswordAlphabet, length)
}

// RandomString draws length characters uniformly from the alphabet using
// crypto/rand.
func RandomString(alphabet string, length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("sec: random generation failed: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
