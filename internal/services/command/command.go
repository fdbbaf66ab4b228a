package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model"
	"github.com/LeonardoBeccarini/agri_dashboard/pkg/dedup"
	"github.com/LeonardoBeccarini/agri_dashboard/pkg/rabbitmq"
)

const DefaultTopic = "dashboard/command/#"

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingPlot   = errors.New("plot_id required")
	ErrBadPayload    = errors.New("bad command payload")
)

// Engine is the set of operations a command can trigger.
type Engine interface {
	Select(id string) bool
	ApplyRain()
	ApplyIrrigation(id string) bool
	IrrigateSelected() bool
	ResetAll()
}

// Handler maps commands onto engine operations. It is shared by the
// MQTT subscription and the HTTP/gRPC surfaces.
type Handler struct {
	engine  Engine
	deduper *dedup.Deduper
	logger  *log.Logger
}

func NewHandler(e Engine, d *dedup.Deduper, logger *log.Logger) *Handler {
	if d == nil {
		d = dedup.New(10*time.Minute, 20000)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{engine: e, deduper: d, logger: logger}
}

// Apply runs one command and reports whether the engine state changed.
// Unknown plots are not an error: the command is a no-op.
func (h *Handler) Apply(cmd model.Command) (bool, error) {
	switch cmd.Action {
	case model.EventRain:
		h.engine.ApplyRain()
		return true, nil
	case model.EventIrrigation:
		if cmd.PlotID == "" {
			return h.engine.IrrigateSelected(), nil
		}
		return h.engine.ApplyIrrigation(cmd.PlotID), nil
	case model.EventReset:
		h.engine.ResetAll()
		return true, nil
	case model.EventSelect:
		if cmd.PlotID == "" {
			return false, ErrMissingPlot
		}
		return h.engine.Select(cmd.PlotID), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
}

// HandleMessage is a rabbitmq.Handler. The action comes from the payload,
// or from the last topic segment when the payload omits it
// (dashboard/command/rain with an empty body is valid).
// Repeated commands with the same id run once; commands without an id
// always run unless the broker flags them as a redelivery.
func (h *Handler) HandleMessage(_ string, msg mqtt.Message) error {
	payload := msg.Payload()

	var cmd model.Command
	if len(strings.TrimSpace(string(payload))) > 0 {
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
	}
	if cmd.Action == "" {
		cmd.Action = model.EventKind(path.Base(msg.Topic()))
	}

	// QoS1 può riconsegnare: dedup solo su id esplicito. Senza id ogni
	// messaggio è una nuova pressione del pulsante, tranne le redelivery del broker.
	if cmd.ID == "" && msg.Duplicate() {
		h.logger.Printf("command: redelivery on %s without id, skipped", msg.Topic())
		return nil
	}
	if !h.deduper.ShouldProcess(cmd.ID) {
		h.logger.Printf("command: duplicate %s on %s, skipped", cmd.ID, msg.Topic())
		return nil
	}

	applied, err := h.Apply(cmd)
	if err != nil {
		return err
	}
	if !applied {
		h.logger.Printf("command: %s plot=%q had no effect", cmd.Action, cmd.PlotID)
	}
	return nil
}

var _ rabbitmq.Handler = (*Handler)(nil).HandleMessage
