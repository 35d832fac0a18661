package domain

// CtxKey names a gin context entry carrying the authenticated principal.
type CtxKey string

// Set by the auth middleware after token verification; read by handlers.
const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)
