package services

import "fmt"

// Identity addresses exactly one cart: the authenticated user id when logged
// in, otherwise an anonymous session-bound token. An authenticated identity is
// always keyed by user id, regardless of any earlier anonymous token; no
// merge of anonymous cart contents happens on login.
type Identity struct {
	UserID *uint
	Token  string
}

func (i Identity) Authenticated() bool {
	return i.UserID != nil
}

// Key is the cart document id for this identity.
func (i Identity) Key() string {
	if i.UserID != nil {
		return fmt.Sprintf("user:%d", *i.UserID)
	}
	return "anon:" + i.Token
}
