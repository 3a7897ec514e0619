package authview

// User-facing texts.
const (
	MsgMissingSignupFields = "Please fill in all fields."
	MsgWeakPassword        = "Password must be at least 8 characters long."
	MsgTermsNotAccepted    = "You must agree to the Terms and Privacy Policy."
	MsgMissingLoginFields  = "Please enter your email and password."
	MsgMissingResetEmail   = "Please enter your email address."

	MsgSignupSuccess = "Account created successfully. Please log in."
	MsgLoginSuccess  = "Logged in successfully."
	MsgResetSuccess  = "Password reset link sent to your email."

	MsgSignupFailed = "Failed to create account."
	MsgLoginFailed  = "Failed to log in."
	MsgResetFailed  = "Failed to send reset link."
	MsgOAuthFailed  = "Something went wrong with Google sign-in."
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 8
