// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateSecureToken returns a cryptographically random hex string of
// byteLength random bytes (so the resulting string is 2*byteLength chars).
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// GenerateReference returns a short, human-quotable uppercase reference with
// the given prefix, e.g. "JS-9F27C41B".
//
// References are what citizens read over the phone to a help desk, so they are
// kept short. Uniqueness is enforced by the database, not by this function.
func GenerateReference(prefix string, byteLength int) (string, error) {
	token, err := GenerateSecureToken(byteLength)
	if err != nil {
		return "", err
	}
	return prefix + "-" + strings.ToUpper(token), nil
}
