package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateCode returns an uppercase hex string from n random bytes. Used for
// admin session tokens.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// GenerateSerialNumber builds a ticket serial like "NIV004217": the configured
// prefix followed by `digits` random decimal digits.
func GenerateSerialNumber(prefix string, digits int) (string, error) {
	const charset = "0123456789"

	code := make([]byte, digits)

	if _, err := rand.Read(code); err != nil {
		return "", err
	}

	for i := 0; i < digits; i++ {
		code[i] = charset[int(code[i])%len(charset)]
	}

	return fmt.Sprintf("%s%s", prefix, code), nil
}
