package models

// Session identifies the authenticated caller of a service operation.
//
// Ownership checks take the session as an explicit argument instead of
// reading a process-global current user, so every service call carries
// exactly the identity it was authorized with.
type Session struct {
	// UserID is the authenticated user's identifier.
	UserID int64
}
