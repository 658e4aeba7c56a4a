// Package submit owns the registration form's submission state machine.
//
// A Submitter gates every attempt on the activity phase, the last known
// slot status and field validation, in that order, before it makes exactly
// one network call. It allows at most one call in flight and never retries.
package submit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/jufengpp/signup/internal/api"
	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/log"
	"github.com/jufengpp/signup/internal/timegate"
)

// Registrar performs the registration call.
type Registrar interface {
	Register(ctx context.Context, req domain.RegistrationRequest) (api.Result, error)
}

// SlotSource exposes the tracker's last known status and an on-demand poll.
type SlotSource interface {
	Status() (domain.SlotStatus, bool)
	Refresh()
}

// PhaseSource reports the current activity phase.
type PhaseSource interface {
	Current() timegate.State
}

// State is the form's position in the session.
type State int

const (
	StateFormVisible State = iota
	StateRegistered
)

func (s State) String() string {
	if s == StateRegistered {
		return "REGISTERED"
	}
	return "FORM_VISIBLE"
}

// Kind classifies how a submission ended.
type Kind int

const (
	// KindRegistered means the server accepted the registration.
	KindRegistered Kind = iota
	// KindRejected means the server answered with a failure.
	KindRejected
	// KindFailed means the call produced no usable response.
	KindFailed
	// KindInvalid means one or more fields failed validation.
	KindInvalid
	// KindBlocked means the phase or capacity gate refused the attempt.
	KindBlocked
	// KindBusy means another submission was still in flight.
	KindBusy
)

// Outcome is the result of one Submit call.
type Outcome struct {
	Kind    Kind
	Message string
	// Fields is set for KindInvalid.
	Fields map[domain.Field]string
	// Err is nil only for KindRegistered.
	Err error
}

// Registered reports whether the submission moved the form to REGISTERED.
func (o Outcome) Registered() bool {
	return o.Kind == KindRegistered
}

// Submitter runs registration attempts against a Registrar.
type Submitter struct {
	registrar Registrar
	phase     PhaseSource
	slots     SlotSource

	inFlight atomic.Bool

	mu    sync.RWMutex
	state State
}

// New creates a Submitter in the FORM_VISIBLE state.
func New(registrar Registrar, phase PhaseSource, slots SlotSource) *Submitter {
	return &Submitter{
		registrar: registrar,
		phase:     phase,
		slots:     slots,
	}
}

// State returns the current form state.
func (s *Submitter) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// InFlight reports whether a network call is outstanding.
func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

// Submit checks preconditions and, if they pass, sends req once.
// It blocks until the call returns, so callers run it off the UI loop.
func (s *Submitter) Submit(ctx context.Context, req domain.RegistrationRequest) Outcome {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Debug(log.CatSubmit, "Submit ignored, already in flight")
		err := &domain.PreconditionError{Reason: domain.ErrInFlight}
		return Outcome{Kind: KindBusy, Message: err.Message(), Err: err}
	}
	defer s.inFlight.Store(false)

	// Checked under the lock: a success records REGISTERED before it
	// releases the lock, so the next holder always sees it.
	if s.State() == StateRegistered {
		return blocked(domain.ErrAlreadyRegistered)
	}

	req = req.Normalize()
	if out, ok := s.check(req); !ok {
		return out
	}

	log.Info(log.CatSubmit, "Submitting registration", "package", string(req.CoursePackage))

	result, err := s.registrar.Register(ctx, req)
	if err != nil {
		return failure(err)
	}
	if !result.OK() {
		rejection := &domain.ServerRejection{Code: result.Code, Message: result.Message}
		log.Warn(log.CatSubmit, "Registration rejected", "code", result.Code, "message", result.Message)
		return Outcome{Kind: KindRejected, Message: domain.UserMessage(rejection), Err: rejection}
	}

	s.mu.Lock()
	s.state = StateRegistered
	s.mu.Unlock()

	log.Info(log.CatSubmit, "Registration accepted")
	s.slots.Refresh()

	msg := result.Message
	if msg == "" {
		msg = domain.MsgSuccess
	}
	return Outcome{Kind: KindRegistered, Message: msg}
}

// check applies the phase, capacity and field gates in order.
func (s *Submitter) check(req domain.RegistrationRequest) (Outcome, bool) {
	switch s.phase.Current().Phase {
	case domain.PhaseNotStarted:
		return blocked(domain.ErrNotStarted), false
	case domain.PhaseEnded:
		return blocked(domain.ErrEnded), false
	}

	if status, _ := s.slots.Status(); status.IsFull {
		return blocked(domain.ErrFull), false
	}

	if err := req.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return Outcome{Kind: KindInvalid, Message: domain.MsgInvalidInput, Fields: verr.Fields, Err: err}, false
		}
		return Outcome{Kind: KindInvalid, Message: domain.MsgInvalidInput, Err: err}, false
	}
	return Outcome{}, true
}

func blocked(reason error) Outcome {
	err := &domain.PreconditionError{Reason: reason}
	log.Debug(log.CatSubmit, "Submit blocked", "reason", reason.Error())
	return Outcome{Kind: KindBlocked, Message: err.Message(), Err: err}
}

// failure maps a Registrar error. A non-2xx answer carrying a server
// message is a rejection shown verbatim; anything else is a transport
// failure with the generic network message.
func failure(err error) Outcome {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.FromServer {
		rejection := &domain.ServerRejection{Code: apiErr.Status, Message: apiErr.Message}
		log.Warn(log.CatSubmit, "Registration rejected", "status", apiErr.Status, "message", apiErr.Message)
		return Outcome{Kind: KindRejected, Message: domain.UserMessage(rejection), Err: rejection}
	}

	transport := &domain.TransportError{Err: err}
	log.ErrorErr(log.CatSubmit, "Registration call failed", err)
	return Outcome{Kind: KindFailed, Message: domain.MsgNetwork, Err: transport}
}
