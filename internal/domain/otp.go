package domain

import "time"

// OtpCode is an outstanding login code for an email address.
// PK: email, so at most one live code per address; a new issuance overwrites
// the previous one. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OtpCode struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the code's expiry has passed at the given instant.
func (o *OtpCode) Expired(now time.Time) bool {
	return o.ExpiresAt < now.Unix()
}
