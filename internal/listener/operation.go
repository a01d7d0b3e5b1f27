package listener

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AttachKit/internal/channel"
	"github.com/GriffinCanCode/AttachKit/internal/logging"
	"github.com/GriffinCanCode/AttachKit/internal/wire"
)

// Operation is a fully decoded request plus its retained reply channel.
// Exactly one of Complete or Discard must be called; either closes the
// channel exactly once.
type Operation struct {
	id     string
	name   string
	args   [wire.MaxArgs]string
	ch     *channel.Channel
	logger *logging.Logger

	done atomic.Bool
}

// ID returns the operation's correlation ID for logging.
func (o *Operation) ID() string { return o.id }

// Name returns the command name.
func (o *Operation) Name() string { return o.name }

// Arg returns the i-th argument, or "" when out of range. An empty string
// means "no argument".
func (o *Operation) Arg(i int) string {
	if i < 0 || i >= len(o.args) {
		return ""
	}
	return o.args[i]
}

// Args returns all argument slots in order.
func (o *Operation) Args() []string {
	return o.args[:]
}

// Complete writes the result code and payload through the retained channel,
// flushes, and closes it. Writing is blocking: an unresponsive reader stalls
// the caller, which is accepted since only privileged peers can create
// channels under the listener's namespace.
func (o *Operation) Complete(code int32, payload []byte) error {
	if !o.done.CompareAndSwap(false, true) {
		return nil
	}
	defer o.ch.Close()

	if err := wire.WriteReply(o.ch, code, payload); err != nil {
		o.logger.Error("reply write failed",
			zap.String("op_id", o.id),
			zap.String("command", o.name),
			zap.Error(err),
		)
		return err
	}
	if err := o.ch.Flush(); err != nil {
		o.logger.Error("reply flush failed",
			zap.String("op_id", o.id),
			zap.String("command", o.name),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Discard releases the channel without replying. The client sees only the
// channel closing.
func (o *Operation) Discard() {
	if o.done.CompareAndSwap(false, true) {
		o.ch.Close()
	}
}
