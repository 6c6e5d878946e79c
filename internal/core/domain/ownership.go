package domain

import "strings"

// Owned is implemented by every resource that records its creator.
type Owned interface {
	OwnerID() string
}

// AssertOwner returns nil only when p created resource. Ids are compared in
// their normalised string form so stored and token ids never drift apart.
func AssertOwner[T Owned](resource T, p Principal) error {
	if !p.Authenticated() {
		return ErrMissingPrincipal
	}
	owner := normalizeID(resource.OwnerID())
	if owner == "" || owner != normalizeID(p.UserID) {
		return ErrNotOwner
	}
	return nil
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
