package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
	"github.com/photogram/photogram-api/internal/pkg/metrics"
)

// FormDeps is everything a SignUpForm talks to.
type FormDeps struct {
	Validator *validator.Validate
	Checker   ports.UsernameChecker
	Auth      ports.AuthProvider
	Navigator ports.Navigator
	Logger    zerolog.Logger
	Now       func() time.Time
}

// SignUpForm holds the state of one sign-up attempt. Fields are validated on
// blur; username additionally needs an answer from the uniqueness check.
//
// Every blur bumps a per-field sequence number. An async answer is applied
// only if no newer blur arrived for that field while it was in flight.
type SignUpForm struct {
	id   string
	deps FormDeps

	mu          sync.Mutex
	fields      map[domain.Field]*domain.FieldState
	seq         map[domain.Field]uint64
	submitting  bool
	errMsg      string
	errKind     domain.SubmitErrorKind
	redirectTo  string
	submissions int
	lastSeen    time.Time
}

// NewSignUpForm returns an empty form with every field untouched.
func NewSignUpForm(id string, deps FormDeps) *SignUpForm {
	if deps.Validator == nil {
		deps.Validator = NewFieldValidator()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Navigator == nil {
		deps.Navigator = ports.NavigatorFunc(func(string) {})
	}
	f := &SignUpForm{
		id:       id,
		deps:     deps,
		fields:   make(map[domain.Field]*domain.FieldState, len(domain.SignUpFields)),
		seq:      make(map[domain.Field]uint64, len(domain.SignUpFields)),
		lastSeen: deps.Now(),
	}
	for _, name := range domain.SignUpFields {
		f.fields[name] = &domain.FieldState{Status: domain.StatusUntouched}
	}
	return f
}

func (f *SignUpForm) ID() string { return f.id }

// Change records value for field without validating it. Any verdict for the
// old value is dropped, including an answer still in flight; the field has no
// verdict again until its next blur.
func (f *SignUpForm) Change(field domain.Field, value string) (*domain.FormState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.fields[field]
	if !ok {
		return nil, domain.ErrUnknownField
	}
	f.lastSeen = f.deps.Now()
	if st.Value == value {
		return f.snapshotLocked(), nil
	}
	f.seq[field]++
	st.Value = value
	st.Status = domain.StatusUntouched
	st.Error = domain.FieldErrNone
	return f.snapshotLocked(), nil
}

// Blur records value for field and validates it. For username, a value that
// passes the static rules is then checked for uniqueness; the call blocks
// until that answer arrives or ctx is done.
func (f *SignUpForm) Blur(ctx context.Context, field domain.Field, value string) (*domain.FormState, error) {
	f.mu.Lock()
	st, ok := f.fields[field]
	if !ok {
		f.mu.Unlock()
		return nil, domain.ErrUnknownField
	}
	f.lastSeen = f.deps.Now()
	f.seq[field]++
	seq := f.seq[field]
	st.Value = value
	st.Touched = true

	if kind := checkField(f.deps.Validator, field, value); kind != domain.FieldErrNone || field != domain.FieldUsername {
		setVerdict(st, kind)
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, nil
	}

	st.Status = domain.StatusPending
	st.Error = domain.FieldErrNone
	f.mu.Unlock()

	taken, err := f.deps.Checker.IsUsernameTaken(ctx, value)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq[field] != seq {
		metrics.StaleValidationsTotal.Inc()
		f.deps.Logger.Debug().Str("form_id", f.id).Str("field", string(field)).Msg("discarding stale validation")
		return f.snapshotLocked(), nil
	}
	switch {
	case err != nil:
		f.deps.Logger.Warn().Err(err).Str("form_id", f.id).Msg("username check failed")
		setVerdict(st, domain.FieldErrCheckFailed)
	case taken:
		setVerdict(st, domain.FieldErrTaken)
	default:
		setVerdict(st, domain.FieldErrNone)
	}
	return f.snapshotLocked(), nil
}

// Submit hands the form values to the auth provider. It returns
// domain.ErrSubmitDisabled unless every field is valid, and
// domain.ErrSubmissionInProgress while an earlier submission is running, and
// domain.ErrAlreadySubmitted once a submission has succeeded.
// Provider failures are reported through the returned state, not as errors.
func (f *SignUpForm) Submit(ctx context.Context) (*domain.FormState, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, domain.ErrSubmissionInProgress
	}
	if f.redirectTo != "" {
		f.mu.Unlock()
		return nil, domain.ErrAlreadySubmitted
	}
	if !f.canSubmitLocked() {
		f.mu.Unlock()
		return nil, domain.ErrSubmitDisabled
	}
	f.lastSeen = f.deps.Now()
	f.submitting = true
	f.errMsg = ""
	f.errKind = domain.SubmitErrNone
	f.submissions++
	input := domain.SignUpInput{
		Email:    f.fields[domain.FieldEmail].Value,
		Name:     f.fields[domain.FieldName].Value,
		Username: f.fields[domain.FieldUsername].Value,
		Password: f.fields[domain.FieldPassword].Value,
	}
	f.mu.Unlock()

	user, err := f.deps.Auth.SignUpWithEmailAndPassword(ctx, input)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		serr := ClassifySubmitError(err)
		f.errKind = serr.Kind
		f.errMsg = serr.Message
		snap := f.snapshotLocked()
		f.mu.Unlock()

		if serr.Kind == domain.SubmitErrUsernameTaken {
			forgetUsername(ctx, f.deps.Checker, input.Username)
		}
		metrics.SignUpSubmissionsTotal.WithLabelValues(string(serr.Kind)).Inc()
		f.deps.Logger.Warn().Err(err).Str("form_id", f.id).Str("kind", string(serr.Kind)).Msg("sign-up failed")
		return snap, nil
	}
	f.redirectTo = domain.HomePath
	snap := f.snapshotLocked()
	f.mu.Unlock()

	forgetUsername(ctx, f.deps.Checker, input.Username)
	metrics.SignUpSubmissionsTotal.WithLabelValues("success").Inc()
	evt := f.deps.Logger.Info().Str("form_id", f.id)
	if user != nil {
		evt = evt.Str("user_id", user.UserID)
	}
	evt.Msg("sign-up succeeded")
	f.deps.Navigator.Navigate(domain.HomePath)
	return snap, nil
}

// State returns a snapshot of the form.
func (f *SignUpForm) State() *domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// idleSince reports the last time the client touched the form.
func (f *SignUpForm) idleSince() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSeen
}

func (f *SignUpForm) canSubmitLocked() bool {
	if f.submitting || f.redirectTo != "" {
		return false
	}
	for _, st := range f.fields {
		if !st.Valid() {
			return false
		}
	}
	return true
}

func (f *SignUpForm) snapshotLocked() *domain.FormState {
	fields := make(map[domain.Field]domain.FieldState, len(f.fields))
	for name, st := range f.fields {
		fields[name] = *st
	}
	return &domain.FormState{
		ID:          f.id,
		Fields:      fields,
		CanSubmit:   f.canSubmitLocked(),
		Submitting:  f.submitting,
		Error:       f.errMsg,
		ErrorKind:   f.errKind,
		RedirectTo:  f.redirectTo,
		Submissions: f.submissions,
	}
}

func setVerdict(st *domain.FieldState, kind domain.FieldErrorKind) {
	st.Error = kind
	if kind == domain.FieldErrNone {
		st.Status = domain.StatusValid
		return
	}
	st.Status = domain.StatusInvalid
}

// ClassifySubmitError turns a provider failure into the message shown to
// the user. Username collisions are recognised by sentinel or by the store's
// constraint name, whatever code came with them.
func ClassifySubmitError(err error) *domain.SubmitError {
	var authErr *domain.AuthError
	switch {
	case errors.Is(err, domain.ErrUsernameTaken),
		strings.Contains(err.Error(), domain.UsernameConstraintMarker):
		return &domain.SubmitError{Kind: domain.SubmitErrUsernameTaken, Message: domain.MsgUsernameTaken, Err: err}
	case errors.As(err, &authErr) && authErr.IsAuthDomain():
		return &domain.SubmitError{Kind: domain.SubmitErrAuth, Message: authErr.Message, Err: err}
	default:
		return &domain.SubmitError{Kind: domain.SubmitErrUnknown, Message: domain.MsgSubmitFailed, Err: err}
	}
}
