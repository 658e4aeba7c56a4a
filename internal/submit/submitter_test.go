package submit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jufengpp/signup/internal/api"
	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/mocks"
	"github.com/jufengpp/signup/internal/timegate"
)

type fixedPhase domain.Phase

func (p fixedPhase) Current() timegate.State {
	return timegate.State{Phase: domain.Phase(p)}
}

var validReq = domain.RegistrationRequest{
	Name:          "张三",
	Phone:         "13800138000",
	CoursePackage: domain.Package30,
}

func openSlots(t *testing.T) *mocks.MockSlotSource {
	slots := mocks.NewMockSlotSource(t)
	slots.EXPECT().Status().Return(domain.SlotStatus{RemainingSlots: 5}, true).Maybe()
	return slots
}

func TestSubmit_Success(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, validReq).
		Return(api.Result{Code: api.SuccessCode, Message: "报名成功，我们会尽快联系您"}, nil).Once()

	slots := openSlots(t)
	slots.EXPECT().Refresh().Return().Once()

	s := New(registrar, fixedPhase(domain.PhaseOpen), slots)
	out := s.Submit(context.Background(), validReq)

	require.True(t, out.Registered())
	require.NoError(t, out.Err)
	require.Equal(t, "报名成功，我们会尽快联系您", out.Message)
	require.Equal(t, StateRegistered, s.State())
	require.False(t, s.InFlight())
}

func TestSubmit_SuccessWithoutMessage(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		Return(api.Result{Code: api.SuccessCode}, nil).Once()

	slots := openSlots(t)
	slots.EXPECT().Refresh().Return().Once()

	out := New(registrar, fixedPhase(domain.PhaseOpen), slots).Submit(context.Background(), validReq)
	require.Equal(t, domain.MsgSuccess, out.Message)
}

func TestSubmit_PhaseBlocksNetwork(t *testing.T) {
	tests := []struct {
		name  string
		phase domain.Phase
		want  error
		msg   string
	}{
		{"not started", domain.PhaseNotStarted, domain.ErrNotStarted, domain.MsgNotStarted},
		{"ended", domain.PhaseEnded, domain.ErrEnded, domain.MsgEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registrar := mocks.NewMockRegistrar(t)
			slots := mocks.NewMockSlotSource(t)

			s := New(registrar, fixedPhase(tt.phase), slots)
			out := s.Submit(context.Background(), validReq)

			require.Equal(t, KindBlocked, out.Kind)
			require.ErrorIs(t, out.Err, tt.want)
			require.Equal(t, tt.msg, out.Message)
			require.Equal(t, StateFormVisible, s.State())
			registrar.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_FullBlocksNetwork(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	slots := mocks.NewMockSlotSource(t)
	slots.EXPECT().Status().Return(domain.SlotStatus{RemainingSlots: 0, IsFull: true}, true)

	out := New(registrar, fixedPhase(domain.PhaseOpen), slots).Submit(context.Background(), validReq)

	require.Equal(t, KindBlocked, out.Kind)
	require.ErrorIs(t, out.Err, domain.ErrFull)
	require.Equal(t, domain.MsgFull, out.Message)
	registrar.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestSubmit_PhaseCheckedBeforeCapacity(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	slots := mocks.NewMockSlotSource(t)

	out := New(registrar, fixedPhase(domain.PhaseEnded), slots).Submit(context.Background(), validReq)

	require.ErrorIs(t, out.Err, domain.ErrEnded)
	slots.AssertNotCalled(t, "Status")
}

func TestSubmit_InvalidPhoneBlocksNetwork(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)

	req := validReq
	req.Phone = "12345"
	out := New(registrar, fixedPhase(domain.PhaseOpen), openSlots(t)).Submit(context.Background(), req)

	require.Equal(t, KindInvalid, out.Kind)
	require.ErrorIs(t, out.Err, domain.ErrValidation)
	require.Equal(t, map[domain.Field]string{domain.FieldPhone: "请输入有效的手机号码"}, out.Fields)
	registrar.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestSubmit_NormalizesBeforeSending(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, validReq).Return(api.Result{Code: api.SuccessCode}, nil).Once()

	slots := openSlots(t)
	slots.EXPECT().Refresh().Return().Once()

	req := domain.RegistrationRequest{Name: " 张三 ", Phone: "13800138000 ", CoursePackage: domain.Package30}
	out := New(registrar, fixedPhase(domain.PhaseOpen), slots).Submit(context.Background(), req)
	require.True(t, out.Registered())
}

func TestSubmit_ServerRejectionVerbatim(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		Return(api.Result{Code: 409, Message: "该手机号已报名"}, nil).Once()

	s := New(registrar, fixedPhase(domain.PhaseOpen), openSlots(t))
	out := s.Submit(context.Background(), validReq)

	require.Equal(t, KindRejected, out.Kind)
	require.Equal(t, "该手机号已报名", out.Message)
	var rejection *domain.ServerRejection
	require.ErrorAs(t, out.Err, &rejection)
	require.Equal(t, 409, rejection.Code)
	require.Equal(t, StateFormVisible, s.State())
}

func TestSubmit_Non2xxWithServerMessage(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		Return(api.Result{}, &api.Error{Status: 400, Message: "报名名额已满", FromServer: true}).Once()

	out := New(registrar, fixedPhase(domain.PhaseOpen), openSlots(t)).Submit(context.Background(), validReq)

	require.Equal(t, KindRejected, out.Kind)
	require.Equal(t, "报名名额已满", out.Message)
}

func TestSubmit_TransportFailure(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		Return(api.Result{}, &api.Error{Message: domain.MsgNetwork, Err: errors.New("connection refused")}).Once()

	s := New(registrar, fixedPhase(domain.PhaseOpen), openSlots(t))
	out := s.Submit(context.Background(), validReq)

	require.Equal(t, KindFailed, out.Kind)
	require.Equal(t, domain.MsgNetwork, out.Message)
	var transport *domain.TransportError
	require.ErrorAs(t, out.Err, &transport)
	require.Equal(t, StateFormVisible, s.State())
	require.False(t, s.InFlight())
}

func TestSubmit_NoRetryAfterFailure(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		Return(api.Result{}, errors.New("boom")).Once()

	New(registrar, fixedPhase(domain.PhaseOpen), openSlots(t)).Submit(context.Background(), validReq)
	registrar.AssertNumberOfCalls(t, "Register", 1)
}

func TestSubmit_SecondAttemptAfterFailure(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		Return(api.Result{}, errors.New("boom")).Once()
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		Return(api.Result{Code: api.SuccessCode}, nil).Once()

	slots := openSlots(t)
	slots.EXPECT().Refresh().Return().Once()

	s := New(registrar, fixedPhase(domain.PhaseOpen), slots)
	require.Equal(t, KindFailed, s.Submit(context.Background(), validReq).Kind)
	require.True(t, s.Submit(context.Background(), validReq).Registered())
}

func TestSubmit_SingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.RegistrationRequest) (api.Result, error) {
			close(started)
			<-release
			return api.Result{Code: api.SuccessCode}, nil
		}).Once()

	slots := openSlots(t)
	slots.EXPECT().Refresh().Return().Once()

	s := New(registrar, fixedPhase(domain.PhaseOpen), slots)

	done := make(chan Outcome, 1)
	go func() { done <- s.Submit(context.Background(), validReq) }()

	select {
	case <-started:
	case <-time.After(time.Second):
		require.Fail(t, "first submission never reached the registrar")
	}
	require.True(t, s.InFlight())

	second := s.Submit(context.Background(), validReq)
	require.Equal(t, KindBusy, second.Kind)
	require.ErrorIs(t, second.Err, domain.ErrInFlight)

	close(release)
	first := <-done
	require.True(t, first.Registered())
	registrar.AssertNumberOfCalls(t, "Register", 1)
}

func TestSubmit_RegisteredBlocksFurtherSubmits(t *testing.T) {
	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).Return(api.Result{Code: api.SuccessCode}, nil).Once()

	slots := openSlots(t)
	slots.EXPECT().Refresh().Return().Once()

	s := New(registrar, fixedPhase(domain.PhaseOpen), slots)
	require.True(t, s.Submit(context.Background(), validReq).Registered())

	again := s.Submit(context.Background(), validReq)
	require.Equal(t, KindBlocked, again.Kind)
	require.ErrorIs(t, again.Err, domain.ErrAlreadyRegistered)
	require.Equal(t, StateRegistered, s.State())
}

func TestSubmit_ConcurrentCallersRegisterOnce(t *testing.T) {
	for round := range 50 {
		registrar := mocks.NewMockRegistrar(t)
		registrar.EXPECT().Register(mock.Anything, mock.Anything).
			Return(api.Result{Code: api.SuccessCode}, nil).Once()

		slots := openSlots(t)
		slots.EXPECT().Refresh().Return().Once()

		s := New(registrar, fixedPhase(domain.PhaseOpen), slots)

		const callers = 8
		start := make(chan struct{})
		outcomes := make(chan Outcome, callers)
		var wg sync.WaitGroup
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				outcomes <- s.Submit(context.Background(), validReq)
			}()
		}
		close(start)
		wg.Wait()
		close(outcomes)

		registered := 0
		for out := range outcomes {
			switch out.Kind {
			case KindRegistered:
				registered++
			case KindBusy:
			case KindBlocked:
				require.ErrorIs(t, out.Err, domain.ErrAlreadyRegistered)
			default:
				require.Failf(t, "unexpected outcome", "round %d: %v", round, out.Kind)
			}
		}
		require.Equal(t, 1, registered, "round %d", round)
		registrar.AssertNumberOfCalls(t, "Register", 1)
	}
}

func TestSubmit_BusyWinsOverRegisteredCheck(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	registrar := mocks.NewMockRegistrar(t)
	registrar.EXPECT().Register(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, domain.RegistrationRequest) (api.Result, error) {
			close(started)
			<-release
			return api.Result{Code: api.SuccessCode}, nil
		}).Once()

	slots := openSlots(t)
	slots.EXPECT().Refresh().Return().Once()

	s := New(registrar, fixedPhase(domain.PhaseOpen), slots)
	done := make(chan Outcome, 1)
	go func() { done <- s.Submit(context.Background(), validReq) }()
	<-started

	require.Equal(t, KindBusy, s.Submit(context.Background(), validReq).Kind)
	close(release)
	require.True(t, (<-done).Registered())

	after := s.Submit(context.Background(), validReq)
	require.ErrorIs(t, after.Err, domain.ErrAlreadyRegistered)
	require.False(t, s.InFlight())
}

func TestState_String(t *testing.T) {
	require.Equal(t, "FORM_VISIBLE", StateFormVisible.String())
	require.Equal(t, "REGISTERED", StateRegistered.String())
}
