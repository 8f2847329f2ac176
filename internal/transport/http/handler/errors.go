package handler

const (
	errInternalServer      = "Internal server error"
	errInvalidCredentials  = "Invalid email or password"
	errEmailTaken          = "An account with this email already exists"
	errApplicationNotFound = "Application not found"
	errResumeNotFound      = "Resume not found"
	errNoDocument          = "Resume has no stored document to download"
	errForbidden           = "You do not have access to this resource"
)
