package authview

import "fmt"

// Mode is the authentication form currently presented and submittable.
type Mode int

const (
	ModeSignup Mode = iota
	ModeLogin
	ModeReset
)

var modeNames = [...]string{
	ModeSignup: "signup",
	ModeLogin:  "login",
	ModeReset:  "reset",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a wire name ("signup", "login", "reset") into a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view mode %q", s)
}

// AllowsOAuth reports whether the social sign-in button is offered in m.
func (m Mode) AllowsOAuth() bool {
	return m == ModeSignup || m == ModeLogin
}
