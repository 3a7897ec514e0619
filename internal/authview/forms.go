package authview

// SignupForm is the account creation form.
type SignupForm struct {
	Name          string
	Email         string
	Password      string
	AcceptedTerms bool
}

// LoginForm is the email and password sign-in form.
type LoginForm struct {
	Email    string
	Password string
}

// ResetForm requests a password recovery email.
type ResetForm struct {
	Email string
}

// Status is the single message and progress record shared by all three forms.
// Error and Success are never both set.
type Status struct {
	Error   string
	Success string
	Loading bool
}

func (s *Status) clearMessages() {
	s.Error = ""
	s.Success = ""
}

func (s *Status) setError(msg string) {
	s.Error = msg
	s.Success = ""
}

func (s *Status) setSuccess(msg string) {
	s.Success = msg
	s.Error = ""
}

// Snapshot is a consistent copy of a view for rendering. Passwords are never
// included.
type Snapshot struct {
	Mode   Mode
	Signup SignupForm
	Login  LoginForm
	Reset  ResetForm
	Status Status
}
