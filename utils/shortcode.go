package utils

import (
	"crypto/rand"
	"math/big"
)

// shortCodeAlphabet excludes look-alike characters (0/O, 1/l/I) since the
// codes end up printed on invoices and read over the phone
const shortCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz"

// GenerateShortCode returns a random alphanumeric code of length n.
// Used for design unique codes and invoice number suffixes.
func GenerateShortCode(n int) string {
	if n <= 0 {
		return ""
	}

	code := make([]byte, n)
	max := big.NewInt(int64(len(shortCodeAlphabet)))
	for i := range code {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform RNG is broken;
			// fall back to a fixed character rather than panic
			code[i] = shortCodeAlphabet[0]
			continue
		}
		code[i] = shortCodeAlphabet[idx.Int64()]
	}
	return string(code)
}
