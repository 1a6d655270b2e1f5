package model

// SessionPayload is the record stored in the session store for an
// authenticated user. It is serialized as JSON under sessions:<sessionId>.
type SessionPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// SessionPayloadFor builds the session payload from a user projection.
func SessionPayloadFor(u PublicUser) SessionPayload {
	return SessionPayload{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Verified: u.Verified,
	}
}

// User converts the payload back to the public user projection attached
// to authenticated requests.
func (p SessionPayload) User() PublicUser {
	return PublicUser{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Verified: p.Verified,
	}
}
