package testutil

import (
	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/ports"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

var _ ports.EstimatorService = (*FakeEstimatorService)(nil)

// FakeEstimatorService is a reusable fake implementing ports.EstimatorService.
// Put ONLY what multiple test packages need here.
type FakeEstimatorService struct {
	In workbench.Inputs

	SetSharedCalled bool
	SetSharedArg    envelope.SharedInputs
	SetSharedErr    error

	SetScenarioCalled bool
	SetScenarioID     workbench.ScenarioID
	SetScenarioArg    envelope.ScenarioInputs
	SetScenarioErr    error

	UpdateSharedCalls   int
	UpdateScenarioCalls int
	UpdateScenarioID    workbench.ScenarioID
	UpdateCalls         int
	UpdateErr           error

	EvaluateCalls int
}

func NewFakeEstimatorService() *FakeEstimatorService {
	return &FakeEstimatorService{In: workbench.DefaultInputs()}
}

func (f *FakeEstimatorService) Get() workbench.Inputs { return f.In }

func (f *FakeEstimatorService) SetShared(s envelope.SharedInputs) error {
	f.SetSharedCalled = true
	f.SetSharedArg = s
	if f.SetSharedErr != nil {
		return f.SetSharedErr
	}
	f.In.Shared = s
	return nil
}

func (f *FakeEstimatorService) SetScenario(id workbench.ScenarioID, s envelope.ScenarioInputs) error {
	f.SetScenarioCalled = true
	f.SetScenarioID = id
	f.SetScenarioArg = s
	if f.SetScenarioErr != nil {
		return f.SetScenarioErr
	}
	switch id {
	case workbench.ScenarioA:
		f.In.A = s
	case workbench.ScenarioB:
		f.In.B = s
	default:
		return workbench.ErrUnknownScenario
	}
	return nil
}

func (f *FakeEstimatorService) UpdateShared(fn func(*envelope.SharedInputs)) error {
	f.UpdateSharedCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	fn(&f.In.Shared)
	return nil
}

func (f *FakeEstimatorService) UpdateScenario(id workbench.ScenarioID, fn func(*envelope.ScenarioInputs)) error {
	f.UpdateScenarioCalls++
	f.UpdateScenarioID = id
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	switch id {
	case workbench.ScenarioA:
		fn(&f.In.A)
	case workbench.ScenarioB:
		fn(&f.In.B)
	default:
		return workbench.ErrUnknownScenario
	}
	return nil
}

// Update validates the whole tuple like the workbench does, so callers can rely on
// rejected writes leaving In untouched.
func (f *FakeEstimatorService) Update(fn func(*workbench.Inputs)) error {
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	next := f.In
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	f.In = next
	return nil
}

func (f *FakeEstimatorService) Evaluate() envelope.Comparison {
	f.EvaluateCalls++
	return envelope.Evaluate(f.In.Shared, f.In.A, f.In.B)
}

func (f *FakeEstimatorService) Snapshot() (workbench.Inputs, envelope.Comparison) {
	return f.In, f.Evaluate()
}

func (f *FakeEstimatorService) SelfCheck() []envelope.CheckResult {
	return envelope.SelfCheck()
}
