// Package authview implements the sign-up / login / reset-password view: its
// mode state machine, form validation and the calls into the identity provider.
package authview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/khetguard/khetguard/internal/domain"
	"github.com/khetguard/khetguard/internal/pubsub"
)

var (
	// ErrSubmissionInFlight is returned when a submission starts while another is loading.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrSuperseded is returned when the view changed while the provider call ran;
	// the provider's answer was discarded.
	ErrSuperseded = errors.New("submission superseded by a newer view state")
	// ErrInactiveForm is returned when submitting a form whose mode is not active.
	ErrInactiveForm = errors.New("form is not active")
	// ErrOAuthUnavailable is returned when social sign-in is started from the reset form.
	ErrOAuthUnavailable = errors.New("social sign-in is not offered in this mode")
)

// Reset-password and sign-up confirmation links land here, relative to the origin.
const ResetPasswordPath = "/reset-password"

// Demo values the sign-up form starts with.
const (
	DefaultSignupName  = "Rajesh Kumar"
	DefaultSignupEmail = "rajesh@farm.com"
)

// Options configure a View.
type Options struct {
	// Origin is the application's own root URL, without a trailing slash.
	Origin string
	// OAuthProvider is the social provider offered by the OAuth button.
	OAuthProvider string
	Publisher     pubsub.Publisher
	Recorder      Recorder
	Logger        *slog.Logger
	Now           func() time.Time
}

// View is one browser's authentication view. All methods are safe for
// concurrent use; the lock is released while the provider is called.
type View struct {
	provider domain.IdentityProvider
	opts     Options

	mu     sync.Mutex
	mode   Mode
	signup SignupForm
	login  LoginForm
	reset  ResetForm
	status Status
	// token identifies the current submission; responses carrying an older token are dropped.
	token uint64
}

// New creates a view in signup mode with the demo sign-up values pre-filled.
func New(provider domain.IdentityProvider, opts Options) *View {
	if opts.OAuthProvider == "" {
		opts.OAuthProvider = domain.OAuthGoogle
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &View{
		provider: provider,
		opts:     opts,
		mode:     ModeSignup,
		signup:   SignupForm{Name: DefaultSignupName, Email: DefaultSignupEmail},
	}
}

// Mode returns the active mode.
func (v *View) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Status returns the current message and loading state.
func (v *View) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Snapshot copies the view for rendering.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := Snapshot{
		Mode:   v.mode,
		Signup: v.signup,
		Login:  v.login,
		Reset:  v.reset,
		Status: v.status,
	}
	s.Signup.Password = ""
	s.Login.Password = ""
	return s
}

// SwitchView makes next the active mode. Messages are cleared and any
// in-flight submission is abandoned, even when next is already active.
func (v *View) SwitchView(next Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = next
	v.status.clearMessages()
	v.status.Loading = false
	v.token++
}

func (v *View) signupRedirect() string { return v.opts.Origin + ResetPasswordPath }
func (v *View) oauthRedirect() string  { return v.opts.Origin + "/" }

// SubmitSignup records f as the sign-up form, validates it and creates the
// account. The form is only stored once the sign-up form is active and idle.
// On success the view moves to login with the email carried over and the
// password and terms cleared.
func (v *View) SubmitSignup(ctx context.Context, f SignupForm) error {
	form := f
	err := v.submit(ctx, OpSignup, ModeSignup, MsgSignupFailed,
		func() (*ValidationError, func(context.Context) error) {
			v.signup = form
			if verr := ValidateSignup(form); verr != nil {
				return verr, nil
			}
			return nil, func(ctx context.Context) error {
				_, err := v.provider.SignUp(ctx, form.Email, form.Password,
					domain.Profile{FullName: form.Name}, v.signupRedirect())
				return err
			}
		},
		func() {
			v.status.setSuccess(MsgSignupSuccess)
			v.login.Email = form.Email
			v.signup.Password = ""
			v.signup.AcceptedTerms = false
			v.mode = ModeLogin
		},
	)
	if err == nil {
		v.publish(ctx, TopicAccountCreated, form.Email, ModeSignup)
	}
	return err
}

// SubmitLogin records f as the login form, validates it and signs in. The
// session is returned for the caller to persist.
func (v *View) SubmitLogin(ctx context.Context, f LoginForm) (*domain.Session, error) {
	var (
		form    = f
		session *domain.Session
	)
	err := v.submit(ctx, OpLogin, ModeLogin, MsgLoginFailed,
		func() (*ValidationError, func(context.Context) error) {
			v.login = form
			if verr := ValidateLogin(form); verr != nil {
				return verr, nil
			}
			return nil, func(ctx context.Context) error {
				s, err := v.provider.SignInWithPassword(ctx, form.Email, form.Password)
				session = s
				return err
			}
		},
		func() {
			v.status.setSuccess(MsgLoginSuccess)
		},
	)
	if err != nil {
		return nil, err
	}
	v.publish(ctx, TopicSessionStarted, form.Email, ModeLogin)
	return session, nil
}

// SubmitReset records f as the reset form, validates it and asks for a
// recovery email.
func (v *View) SubmitReset(ctx context.Context, f ResetForm) error {
	form := f
	err := v.submit(ctx, OpReset, ModeReset, MsgResetFailed,
		func() (*ValidationError, func(context.Context) error) {
			v.reset = form
			if verr := ValidateReset(form); verr != nil {
				return verr, nil
			}
			return nil, func(ctx context.Context) error {
				return v.provider.SendPasswordReset(ctx, form.Email, v.signupRedirect())
			}
		},
		func() {
			v.status.setSuccess(MsgResetSuccess)
		},
	)
	if err == nil {
		v.publish(ctx, TopicResetRequested, form.Email, ModeReset)
	}
	return err
}

// StartOAuth begins a social sign-in. The returned redirect must be followed by
// the browser; the view itself does not change mode.
func (v *View) StartOAuth(ctx context.Context) (*domain.OAuthRedirect, error) {
	v.mu.Lock()
	if !v.mode.AllowsOAuth() {
		v.mu.Unlock()
		v.opts.Recorder.Record(OpOAuth, OutcomeRejected)
		return nil, ErrOAuthUnavailable
	}
	if v.status.Loading {
		v.mu.Unlock()
		v.opts.Recorder.Record(OpOAuth, OutcomeRejected)
		return nil, ErrSubmissionInFlight
	}
	mode := v.mode
	v.status.clearMessages()
	v.status.Loading = true
	v.token++
	token := v.token
	v.mu.Unlock()

	var redirect *domain.OAuthRedirect
	err := v.invoke(ctx, func(ctx context.Context) error {
		r, err := v.provider.SignInWithOAuth(ctx, v.opts.OAuthProvider, v.oauthRedirect())
		redirect = r
		return err
	})

	v.mu.Lock()
	if token != v.token {
		v.mu.Unlock()
		v.opts.Recorder.Record(OpOAuth, OutcomeSuperseded)
		return nil, ErrSuperseded
	}
	v.status.Loading = false
	if err == nil && redirect == nil {
		err = errors.New("identity provider returned no redirect")
	}
	if err != nil {
		v.status.setError(userMessage(err, MsgOAuthFailed))
		v.mu.Unlock()
		v.opts.Recorder.Record(OpOAuth, OutcomeFailed)
		v.opts.Logger.Warn("OAuth start failed", "mode", mode.String(), "error", err)
		return nil, err
	}
	v.mu.Unlock()

	v.opts.Recorder.Record(OpOAuth, OutcomeSuccess)
	v.publish(ctx, TopicOAuthStarted, "", mode)
	return redirect, nil
}

// submit runs the shared submission protocol: clear messages, mark loading,
// validate, call the provider without holding the lock, then apply the result
// only if no newer submission or mode switch happened meanwhile. prepare and
// onSuccess run with the lock held.
func (v *View) submit(
	ctx context.Context,
	op Operation,
	mode Mode,
	fallback string,
	prepare func() (*ValidationError, func(context.Context) error),
	onSuccess func(),
) error {
	v.mu.Lock()
	if v.mode != mode {
		v.mu.Unlock()
		v.opts.Recorder.Record(op, OutcomeRejected)
		return ErrInactiveForm
	}
	if v.status.Loading {
		v.mu.Unlock()
		v.opts.Recorder.Record(op, OutcomeRejected)
		return ErrSubmissionInFlight
	}
	v.status.clearMessages()
	v.status.Loading = true

	verr, call := prepare()
	if verr != nil {
		v.status.setError(verr.Message)
		v.status.Loading = false
		v.mu.Unlock()
		v.opts.Recorder.Record(op, OutcomeInvalid)
		return verr
	}
	v.token++
	token := v.token
	v.mu.Unlock()

	err := v.invoke(ctx, call)

	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.token {
		v.opts.Recorder.Record(op, OutcomeSuperseded)
		v.opts.Logger.Debug("Discarding stale identity response", "op", string(op), "error", err)
		return ErrSuperseded
	}
	v.status.Loading = false
	if err != nil {
		v.status.setError(userMessage(err, fallback))
		v.opts.Recorder.Record(op, OutcomeFailed)
		v.opts.Logger.Warn("Identity operation failed", "op", string(op), "error", err)
		return err
	}
	onSuccess()
	v.opts.Recorder.Record(op, OutcomeSuccess)
	return nil
}

// invoke calls the provider, turning a panic into an error so the view is
// always left retryable.
func (v *View) invoke(ctx context.Context, call func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("identity provider panicked: %v", r)
		}
	}()
	return call(ctx)
}

func (v *View) publish(ctx context.Context, event pubsub.Event[AuthEvent], email string, mode Mode) {
	if v.opts.Publisher == nil {
		return
	}
	payload := AuthEvent{Email: email, Mode: mode.String(), At: v.opts.Now().UTC()}
	if err := pubsub.Publish(context.WithoutCancel(ctx), v.opts.Publisher, event, email, payload); err != nil {
		v.opts.Logger.Error("Failed to publish auth event", "topic", event.Name(), "error", err)
	}
}

// userMessage returns the provider's message for err, or fallback.
func userMessage(err error, fallback string) string {
	if msg := domain.UserMessage(err); msg != "" {
		return msg
	}
	return fallback
}
