package model

// Principal is the authenticated caller of the delivery endpoints.
type Principal struct {
	UserID string
	Email  string
	Name   string
}

func (p Principal) IsZero() bool {
	return p.UserID == ""
}
