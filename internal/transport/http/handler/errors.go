package handler

const (
	errInternalServer     = "Internal server error"
	errNoteNotFound       = "Note not found"
	errUserExists         = "Username or email already registered"
	errInvalidCredentials = "Incorrect username or password"
)
