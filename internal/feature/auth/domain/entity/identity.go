package entity

// Identity is a verified principal: produced by a successful login and
// recovered from a valid bearer token.
type Identity struct {
	Username string
}
