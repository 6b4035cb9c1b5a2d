package modbusctrl

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	mbserver "github.com/tbrandon/mbserver"

	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/ports"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

// Config for the Modbus controller.
type Config struct {
	Addr   string
	UnitID byte // UnitID (Modbus slave/unit ID). Use an integer 1..247.
}

type Controller struct {
	svc    ports.EstimatorService
	cfg    Config
	logger zerolog.Logger

	serv *mbserver.Server
}

func New(svc ports.EstimatorService, cfg Config, logger zerolog.Logger) (*Controller, error) {
	if cfg.UnitID == 0 {
		return nil, errors.New("modbus: UnitID is required (non-zero)")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:1502"
	}
	return &Controller{svc: svc, cfg: cfg, logger: logger}, nil
}

// Run starts the Modbus server. Writes are applied to the service immediately and
// reads are served from it directly. It blocks until ctx is canceled.
func (c *Controller) Run(ctx context.Context) error {
	serv := mbserver.NewServer()
	c.serv = serv

	// Register handlers BEFORE starting the TCP listener to avoid races inside mbserver
	// between handler registration and the server's goroutines.
	serv.RegisterFunctionHandler(1, c.handleReadCoils)
	serv.RegisterFunctionHandler(3, c.handleReadHolding)
	serv.RegisterFunctionHandler(4, c.handleReadInput)
	serv.RegisterFunctionHandler(5, c.handleWriteCoil)
	serv.RegisterFunctionHandler(6, c.handleWriteRegister)
	serv.RegisterFunctionHandler(16, c.handleWriteMultiple)

	if err := serv.ListenTCP(c.cfg.Addr); err != nil {
		return fmt.Errorf("mbserver listen tcp %s: %w", c.cfg.Addr, err)
	}
	c.logger.Info().Str("addr", c.cfg.Addr).Uint8("unit_id", c.cfg.UnitID).Msg("modbus server listening")

	<-ctx.Done()
	serv.Close()
	return ctx.Err()
}

// ---- register map ----

// Coils 0/1: interior thermal break of scenario A/B.
var coilScenarios = []workbench.ScenarioID{workbench.ScenarioA, workbench.ScenarioB}

type holdingRegister struct {
	scale float64
	read  func(workbench.Inputs) float64
	apply func(*workbench.Inputs, float64)
}

func scenarioRegister(id workbench.ScenarioID, scale float64, get func(envelope.ScenarioInputs) float64, set func(*envelope.ScenarioInputs, float64)) holdingRegister {
	return holdingRegister{
		scale: scale,
		read: func(in workbench.Inputs) float64 {
			s, _ := in.Scenario(id)
			return get(s)
		},
		apply: func(in *workbench.Inputs, v float64) {
			if id == workbench.ScenarioB {
				set(&in.B, v)
				return
			}
			set(&in.A, v)
		},
	}
}

func sharedRegister(scale float64, get func(envelope.SharedInputs) float64, set func(*envelope.SharedInputs, float64)) holdingRegister {
	return holdingRegister{
		scale: scale,
		read:  func(in workbench.Inputs) float64 { return get(in.Shared) },
		apply: func(in *workbench.Inputs, v float64) { set(&in.Shared, v) },
	}
}

func ach50(s envelope.ScenarioInputs) float64           { return s.ACH50 }
func setACH50(s *envelope.ScenarioInputs, v float64)    { s.ACH50 = v }
func windowU(s envelope.ScenarioInputs) float64         { return s.WindowU }
func setWindowU(s *envelope.ScenarioInputs, v float64)  { s.WindowU = v }
func ceilingR(s envelope.ScenarioInputs) float64        { return s.CeilingR }
func setCeilingR(s *envelope.ScenarioInputs, v float64) { s.CeilingR = v }
func price(s envelope.SharedInputs) float64             { return s.Economics.ElectricityPricePerKWh }
func setPrice(s *envelope.SharedInputs, v float64)      { s.Economics.ElectricityPricePerKWh = v }
func hdd(s envelope.SharedInputs) float64               { return s.Climate.HeatingDegreeDays65 }
func setHDD(s *envelope.SharedInputs, v float64)        { s.Climate.HeatingDegreeDays65 = v }
func cdd(s envelope.SharedInputs) float64               { return s.Climate.CoolingDegreeDays65 }
func setCDD(s *envelope.SharedInputs, v float64)        { s.Climate.CoolingDegreeDays65 = v }

var holdingRegisters = []holdingRegister{
	0: scenarioRegister(workbench.ScenarioA, ACH50Scale, ach50, setACH50),
	1: scenarioRegister(workbench.ScenarioB, ACH50Scale, ach50, setACH50),
	2: scenarioRegister(workbench.ScenarioA, WindowUScale, windowU, setWindowU),
	3: scenarioRegister(workbench.ScenarioB, WindowUScale, windowU, setWindowU),
	4: scenarioRegister(workbench.ScenarioA, CeilingRScale, ceilingR, setCeilingR),
	5: scenarioRegister(workbench.ScenarioB, CeilingRScale, ceilingR, setCeilingR),
	6: sharedRegister(PriceScale, price, setPrice),
	7: sharedRegister(1, hdd, setHDD),
	8: sharedRegister(1, cdd, setCDD),
}

type outputs struct {
	cmp    envelope.Comparison
	passed bool
}

type inputRegister struct {
	scale float64
	read  func(outputs) float64
}

var inputRegisters = []inputRegister{
	0: {HERSScale, func(o outputs) float64 { return o.cmp.A.HERSIndex }},
	1: {HERSScale, func(o outputs) float64 { return o.cmp.B.HERSIndex }},
	2: {1, func(o outputs) float64 { return o.cmp.A.Rated.TotalKWh }},
	3: {1, func(o outputs) float64 { return o.cmp.B.Rated.TotalKWh }},
	4: {1, func(o outputs) float64 { return o.cmp.A.Rated.TotalCost }},
	5: {1, func(o outputs) float64 { return o.cmp.B.Rated.TotalCost }},
	6: {1, func(o outputs) float64 {
		if o.passed {
			return 1
		}
		return 0
	}},
}

// ---- register access ----

func (c *Controller) readCoils(start, qty int) ([]bool, *mbserver.Exception) {
	if start < 0 || start+qty > len(coilScenarios) {
		return nil, &mbserver.IllegalDataAddress
	}
	in := c.svc.Get()
	out := make([]bool, 0, qty)
	for _, id := range coilScenarios[start : start+qty] {
		s, _ := in.Scenario(id)
		out = append(out, s.Wall.InteriorThermalBreak)
	}
	return out, &mbserver.Success
}

func (c *Controller) writeCoil(addr int, on bool) *mbserver.Exception {
	if addr < 0 || addr >= len(coilScenarios) {
		return &mbserver.IllegalDataAddress
	}
	err := c.svc.UpdateScenario(coilScenarios[addr], func(s *envelope.ScenarioInputs) {
		s.Wall.InteriorThermalBreak = on
	})
	if err != nil {
		c.logger.Warn().Err(err).Int("coil", addr).Msg("write rejected")
		return &mbserver.IllegalDataValue
	}
	return &mbserver.Success
}

func (c *Controller) readHolding(start, qty int) ([]uint16, *mbserver.Exception) {
	if start < 0 || start+qty > len(holdingRegisters) {
		return nil, &mbserver.IllegalDataAddress
	}
	in := c.svc.Get()
	regs := make([]uint16, 0, qty)
	for _, r := range holdingRegisters[start : start+qty] {
		regs = append(regs, encodeScaled(r.read(in), r.scale))
	}
	return regs, &mbserver.Success
}

// writeHoldings applies consecutive registers as one update: either every value
// is stored or none is.
func (c *Controller) writeHoldings(start int, vals []uint16) *mbserver.Exception {
	if start < 0 || len(vals) == 0 || start+len(vals) > len(holdingRegisters) {
		return &mbserver.IllegalDataAddress
	}
	err := c.svc.Update(func(in *workbench.Inputs) {
		for i, v := range vals {
			r := holdingRegisters[start+i]
			r.apply(in, decodeScaled(v, r.scale))
		}
	})
	if err != nil {
		c.logger.Warn().Err(err).Int("start", start).Int("quantity", len(vals)).Msg("write rejected")
		return &mbserver.IllegalDataValue
	}
	return &mbserver.Success
}

func (c *Controller) readInput(start, qty int) ([]uint16, *mbserver.Exception) {
	if start < 0 || start+qty > len(inputRegisters) {
		return nil, &mbserver.IllegalDataAddress
	}
	o := outputs{cmp: c.svc.Evaluate(), passed: true}
	for _, chk := range c.svc.SelfCheck() {
		o.passed = o.passed && chk.Pass
	}
	regs := make([]uint16, 0, qty)
	for _, r := range inputRegisters[start : start+qty] {
		regs = append(regs, encodeScaled(r.read(o), r.scale))
	}
	return regs, &mbserver.Success
}

// ---- function handlers ----

func (c *Controller) handleReadCoils(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, exc := readRequest(frame.GetData(), 2000)
	if exc != nil {
		return []byte{}, exc
	}
	coils, exc := c.readCoils(start, qty)
	if exc != &mbserver.Success {
		return []byte{}, exc
	}
	// response: byte count + packed coil bits, LSB first
	byteCount := (len(coils) + 7) / 8
	resp := make([]byte, 1+byteCount)
	resp[0] = byte(byteCount)
	for i, on := range coils {
		if on {
			resp[1+i/8] |= 1 << (i % 8)
		}
	}
	return resp, &mbserver.Success
}

func (c *Controller) handleReadHolding(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, exc := readRequest(frame.GetData(), 125)
	if exc != nil {
		return []byte{}, exc
	}
	regs, exc := c.readHolding(start, qty)
	if exc != &mbserver.Success {
		return []byte{}, exc
	}
	return registerResponse(regs), &mbserver.Success
}

func (c *Controller) handleReadInput(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	start, qty, exc := readRequest(frame.GetData(), 125)
	if exc != nil {
		return []byte{}, exc
	}
	regs, exc := c.readInput(start, qty)
	if exc != &mbserver.Success {
		return []byte{}, exc
	}
	return registerResponse(regs), &mbserver.Success
}

func (c *Controller) handleWriteCoil(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	addr := binary.BigEndian.Uint16(data[0:2])
	value := binary.BigEndian.Uint16(data[2:4])

	var on bool
	switch value {
	case 0x0000:
		on = false
	case 0xFF00:
		on = true
	default:
		return []byte{}, &mbserver.IllegalDataValue
	}

	if exc := c.writeCoil(int(addr), on); exc != &mbserver.Success {
		return []byte{}, exc
	}

	// echo request (address + value)
	resp := make([]byte, 4)
	copy(resp, data[0:4])
	return resp, &mbserver.Success
}

func (c *Controller) handleWriteRegister(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	addr := binary.BigEndian.Uint16(data[0:2])
	value := binary.BigEndian.Uint16(data[2:4])

	if exc := c.writeHoldings(int(addr), []uint16{value}); exc != &mbserver.Success {
		return []byte{}, exc
	}

	resp := make([]byte, 4)
	copy(resp, data[0:4])
	return resp, &mbserver.Success
}

func (c *Controller) handleWriteMultiple(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	d := frame.GetData()
	if len(d) < 5 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	start := binary.BigEndian.Uint16(d[0:2])
	quantity := binary.BigEndian.Uint16(d[2:4])
	byteCount := int(d[4])
	if quantity == 0 || byteCount != int(quantity)*2 || len(d) < 5+byteCount {
		return []byte{}, &mbserver.IllegalDataValue
	}
	if int(start)+int(quantity) > len(holdingRegisters) {
		return []byte{}, &mbserver.IllegalDataAddress
	}
	vals := make([]uint16, quantity)
	for i := range vals {
		vals[i] = binary.BigEndian.Uint16(d[5+i*2 : 5+i*2+2])
	}
	if exc := c.writeHoldings(int(start), vals); exc != &mbserver.Success {
		return []byte{}, exc
	}

	resp := make([]byte, 4)
	binary.BigEndian.PutUint16(resp[0:2], start)
	binary.BigEndian.PutUint16(resp[2:4], quantity)
	return resp, &mbserver.Success
}

// readRequest parses the start address and quantity of a read function.
func readRequest(data []byte, maxQty int) (int, int, *mbserver.Exception) {
	if len(data) < 4 {
		return 0, 0, &mbserver.IllegalDataValue
	}
	start := int(binary.BigEndian.Uint16(data[0:2]))
	qty := int(binary.BigEndian.Uint16(data[2:4]))
	if qty == 0 || qty > maxQty {
		return 0, 0, &mbserver.IllegalDataValue
	}
	return start, qty, nil
}

func registerResponse(regs []uint16) []byte {
	byteCount := len(regs) * 2
	resp := make([]byte, 1+byteCount)
	resp[0] = byte(byteCount)
	for i, r := range regs {
		binary.BigEndian.PutUint16(resp[1+i*2:1+i*2+2], r)
	}
	return resp
}

// ---- scaling ----

const (
	ACH50Scale    float64 = 100
	WindowUScale  float64 = 1000
	CeilingRScale float64 = 10
	PriceScale    float64 = 1000
	HERSScale     float64 = 10
)

// encodeScaled saturates to the unsigned 16-bit range.
func encodeScaled(v, scale float64) uint16 {
	r := math.Round(v * scale)
	if !(r > 0) {
		return 0
	}
	if r > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(r)
}

func decodeScaled(u uint16, scale float64) float64 {
	return float64(u) / scale
}
