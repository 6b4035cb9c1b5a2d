package ports

import (
	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

// EstimatorService is the control-plane port used by controllers (HTTP/MQTT/Modbus).
type EstimatorService interface {
	Get() workbench.Inputs
	SetShared(envelope.SharedInputs) error
	SetScenario(workbench.ScenarioID, envelope.ScenarioInputs) error
	UpdateShared(func(*envelope.SharedInputs)) error
	UpdateScenario(workbench.ScenarioID, func(*envelope.ScenarioInputs)) error
	Update(func(*workbench.Inputs)) error
	Evaluate() envelope.Comparison
	Snapshot() (workbench.Inputs, envelope.Comparison)
	SelfCheck() []envelope.CheckResult
}
