package vm

import (
	stderrors "errors"
	"strings"

	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"
)

// report is the single point where guest-visible diagnostic text
// crosses into host logs. It extracts the full message from an engine
// error or trap — never truncated — logs it prefixed with the
// caller-supplied context string, and returns the message so callers
// can attach it to a classified error.
func (v *VM) report(contextMsg string, err error) string {
	msg := err.Error()
	fields := []zap.Field{zap.String("fault", faultKind(err))}

	var exit *sys.ExitError
	if stderrors.As(err, &exit) {
		fields = append(fields, zap.Uint32("exit_code", exit.ExitCode()))
	}

	v.log.Error(contextMsg+msg, fields...)
	return msg
}

// faultKind distinguishes a guest-requested exit, a runtime trap and a
// plain engine error, for log filtering only.
func faultKind(err error) string {
	var exit *sys.ExitError
	switch {
	case stderrors.As(err, &exit):
		return "exit"
	case strings.Contains(err.Error(), "wasm error:"):
		return "trap"
	default:
		return "error"
	}
}
