package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
	"github.com/photogram/photogram-api/internal/pkg/metrics"
)

const defaultSessionTTL = 30 * time.Minute

// SignUpService keeps in-progress sign-up forms in memory, keyed by a random
// id handed to the client. Forms idle for longer than the TTL are dropped.
type SignUpService struct {
	checker   ports.UsernameChecker
	auth      ports.AuthProvider
	validator *validator.Validate
	ttl       time.Duration
	logger    zerolog.Logger
	now       func() time.Time

	mu    sync.Mutex
	forms map[string]*SignUpForm
}

func NewSignUpService(checker ports.UsernameChecker, auth ports.AuthProvider, ttl time.Duration, logger zerolog.Logger) *SignUpService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SignUpService{
		checker:   checker,
		auth:      auth,
		validator: NewFieldValidator(),
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
		forms:     make(map[string]*SignUpForm),
	}
}

// Start opens a new, empty form.
func (s *SignUpService) Start(_ context.Context) (*domain.FormState, error) {
	s.Sweep()

	id := uuid.NewString()
	form := NewSignUpForm(id, FormDeps{
		Validator: s.validator,
		Checker:   s.checker,
		Auth:      s.auth,
		Navigator: s.navigatorFor(id),
		Logger:    s.logger.With().Str("form_id", id).Logger(),
		Now:       s.now,
	})

	s.mu.Lock()
	s.forms[id] = form
	s.mu.Unlock()

	s.logger.Debug().Str("form_id", id).Msg("sign-up form opened")
	return form.State(), nil
}

func (s *SignUpService) Get(_ context.Context, id string) (*domain.FormState, error) {
	form, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return form.State(), nil
}

func (s *SignUpService) Change(_ context.Context, id string, field domain.Field, value string) (*domain.FormState, error) {
	form, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return form.Change(field, value)
}

func (s *SignUpService) Blur(ctx context.Context, id string, field domain.Field, value string) (*domain.FormState, error) {
	form, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return form.Blur(ctx, field, value)
}

// Submit runs the form's submission. On success the form is discarded as part
// of navigating away, so later lookups return domain.ErrSignUpNotFound.
func (s *SignUpService) Submit(ctx context.Context, id string) (*domain.FormState, error) {
	form, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return form.Submit(ctx)
}

// SignUp validates a complete payload, checks the username and creates the
// account in one call. Failures come back as *domain.ValidationError or
// *domain.SubmitError.
func (s *SignUpService) SignUp(ctx context.Context, input domain.SignUpInput) (*domain.User, error) {
	verr := checkInput(s.validator, input)
	if verr == nil {
		taken, err := s.checker.IsUsernameTaken(ctx, input.Username)
		switch {
		case err != nil:
			verr = &domain.ValidationError{Fields: map[domain.Field]domain.FieldErrorKind{domain.FieldUsername: domain.FieldErrCheckFailed}}
		case taken:
			verr = &domain.ValidationError{Fields: map[domain.Field]domain.FieldErrorKind{domain.FieldUsername: domain.FieldErrTaken}}
		}
	}
	if verr != nil {
		return nil, verr
	}

	user, err := s.auth.SignUpWithEmailAndPassword(ctx, input)
	if err != nil {
		serr := ClassifySubmitError(err)
		if serr.Kind == domain.SubmitErrUsernameTaken {
			forgetUsername(ctx, s.checker, input.Username)
		}
		metrics.SignUpSubmissionsTotal.WithLabelValues(string(serr.Kind)).Inc()
		s.logger.Warn().Err(err).Str("kind", string(serr.Kind)).Msg("sign-up failed")
		return nil, serr
	}
	forgetUsername(ctx, s.checker, input.Username)
	metrics.SignUpSubmissionsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.UserID).Str("username", user.Username).Msg("user signed up")
	return user, nil
}

// Sweep drops forms idle for longer than the TTL.
func (s *SignUpService) Sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, form := range s.forms {
		if form.idleSince().Before(cutoff) {
			delete(s.forms, id)
		}
	}
}

// RunSweeper calls Sweep every interval until ctx is done. A non-positive
// interval sweeps at half the TTL.
func (s *SignUpService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *SignUpService) lookup(id string) (*SignUpForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, ok := s.forms[id]
	if !ok {
		return nil, domain.ErrSignUpNotFound
	}
	return form, nil
}

// navigatorFor leaves the sign-up view: the form is forgotten.
func (s *SignUpService) navigatorFor(id string) ports.Navigator {
	return ports.NavigatorFunc(func(path string) {
		s.mu.Lock()
		delete(s.forms, id)
		s.mu.Unlock()
		s.logger.Debug().Str("form_id", id).Str("path", path).Msg("sign-up form closed")
	})
}
