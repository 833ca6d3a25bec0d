package policy

import "crypto/subtle"

// Credentials is the administrative credential pair guarding document
// ingestion. The check sits in front of the dialogue controller; chat and
// history traffic is never authenticated here.
type Credentials struct {
	Username string
	Password string
}

// Authorize compares the presented credentials against the configured pair
// in constant time.
func (c Credentials) Authorize(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}
