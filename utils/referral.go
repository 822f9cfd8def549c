package utils

import (
	"crypto/rand"
	"math/big"
)

const referralCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode creates a random referral code of the given length.
// The charset omits easily-confused characters (0/O, 1/I).
func GenerateReferralCode(length int) string {
	code := make([]byte, length)
	max := big.NewInt(int64(len(referralCodeCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			code[i] = referralCodeCharset[0]
			continue
		}
		code[i] = referralCodeCharset[n.Int64()]
	}
	return string(code)
}
