package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Agrid-Dev/hersim/cmd/app"
	httpctrl "github.com/Agrid-Dev/hersim/internal/controllers/http"
	modbusctrl "github.com/Agrid-Dev/hersim/internal/controllers/modbus"
	mqttctrl "github.com/Agrid-Dev/hersim/internal/controllers/mqtt"
	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/ports"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

var _ ports.EstimatorService = (*workbench.Workbench)(nil)

var ErrNoController = errors.New("no controller enabled")

type runner interface {
	Run(ctx context.Context) error
}

func serveCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the enabled HTTP, MQTT and Modbus controllers over a live workbench",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, st)
		},
	}
}

func serve(ctx context.Context, st *state) error {
	cfg, logger := st.cfg, st.logger

	in, err := cfg.Inputs()
	if err != nil {
		return err
	}
	wb, err := workbench.New(in)
	if err != nil {
		return err
	}

	if envelope.SelfCheckPassed() {
		logger.Info().Int("checks", len(wb.SelfCheck())).Msg("self-check passed")
	} else {
		for _, c := range wb.SelfCheck() {
			if !c.Pass {
				logger.Warn().Str("check", c.Name).Msg("self-check failed")
			}
		}
	}

	runners, err := buildRunners(cfg, wb, st)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error { return r.Run(gctx) })
	}

	logger.Info().Str("instance_id", cfg.InstanceID).Int("controllers", len(runners)).Msg("hersim started")
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("hersim stopped")
		return nil
	}
	return err
}

func buildRunners(cfg app.Config, wb *workbench.Workbench, st *state) ([]runner, error) {
	if !cfg.AnyControllerEnabled() {
		return nil, ErrNoController
	}
	ctl := cfg.Controllers
	var runners []runner

	if ctl.HTTP.Enabled {
		runners = append(runners, httpctrl.New(wb, ctl.HTTP.Addr, app.Component(st.logger, "http")))
	}

	if ctl.MQTT.Enabled {
		c, err := mqttctrl.New(wb, mqttctrl.Config{
			InstanceID:      cfg.InstanceID,
			BrokerURL:       ctl.MQTT.BrokerURL,
			ClientID:        ctl.MQTT.ClientID,
			BaseTopic:       ctl.MQTT.BaseTopic,
			QoS:             ctl.MQTT.QoS,
			RetainReport:    ctl.MQTT.RetainReport,
			PublishInterval: ctl.MQTT.PublishInterval,
			Username:        ctl.MQTT.Username,
			Password:        ctl.MQTT.Password,
		}, app.Component(st.logger, "mqtt"))
		if err != nil {
			return nil, err
		}
		runners = append(runners, c)
	}

	if ctl.Modbus.Enabled {
		c, err := modbusctrl.New(wb, modbusctrl.Config{
			Addr:   ctl.Modbus.Addr,
			UnitID: ctl.Modbus.UnitID,
		}, app.Component(st.logger, "modbus"))
		if err != nil {
			return nil, err
		}
		runners = append(runners, c)
	}
	return runners, nil
}
