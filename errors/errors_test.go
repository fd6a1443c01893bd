package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseLoad, Kind: KindStore},
			want: "[load] store",
		},
		{
			name: "with detail",
			err:  &Error{Phase: PhaseCall, Kind: KindResultType, Detail: "got i64"},
			want: "[call] result_type: got i64",
		},
		{
			name: "with cause",
			err:  Compile(stderrors.New("bad magic")),
			want: "[load] compile: compile module (caused by: bad magic)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := HostBinding("host_log", stderrors.New("duplicate"))

	if !stderrors.Is(err, &Error{Phase: PhaseLoad, Kind: KindHostBinding}) {
		t.Error("expected match on phase+kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseLoad, Kind: KindCompile}) {
		t.Error("unexpected match on different kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseCall, Kind: KindHostBinding}) {
		t.Error("unexpected match on different phase")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := stderrors.New("linker rejected it")
	err := HostBinding("get_conf", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected Is to reach the cause through Unwrap")
	}
	if got := stderrors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestConstructorDetails(t *testing.T) {
	if err := HostBinding("on_tick", nil); !strings.Contains(err.Detail, `"on_tick"`) {
		t.Errorf("HostBinding must name the entry, got %q", err.Detail)
	}
	if err := UnsupportedShape(9); !strings.Contains(err.Detail, "9") {
		t.Errorf("UnsupportedShape must carry the shape tag, got %q", err.Detail)
	}
	if err := CallFailed("run", "wasm trap: unreachable", nil); !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("CallFailed must carry the diagnostic, got %q", err.Error())
	}
}

func TestLongDiagnosticNotTruncated(t *testing.T) {
	long := strings.Repeat("stack frame; ", 4096)
	err := CallFailed("deep", long, nil)
	if !strings.Contains(err.Error(), long) {
		t.Fatal("diagnostic text was truncated")
	}
}

func TestWrapWithFmt(t *testing.T) {
	inner := Store(stderrors.New("runtime closed"))
	outer := fmt.Errorf("load plugin: %w", inner)

	var verr *Error
	if !stderrors.As(outer, &verr) {
		t.Fatal("expected As to find *Error")
	}
	if verr.Kind != KindStore {
		t.Errorf("Kind = %q, want %q", verr.Kind, KindStore)
	}
}
