package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind      *Error
		err       error
		wantMatch bool
	}{
		"instance of the same root": {
			kind:      ErrNotFound,
			err:       ErrNotFound,
			wantMatch: true,
		},
		"wrapped root": {
			kind:      ErrNotFound,
			err:       Wrap(ErrNotFound, "not here"),
			wantMatch: true,
		},
		"double wrapped root": {
			kind:      ErrState,
			err:       Wrap(Wrap(ErrState, "inner"), "outer"),
			wantMatch: true,
		},
		"different root": {
			kind:      ErrNotFound,
			err:       ErrState,
			wantMatch: false,
		},
		"stdlib error": {
			kind:      ErrNotFound,
			err:       fmt.Errorf("not here"),
			wantMatch: false,
		},
		"nil error": {
			kind:      ErrNotFound,
			err:       nil,
			wantMatch: false,
		},
		"nil kind matches nil error": {
			kind:      nil,
			err:       nil,
			wantMatch: true,
		},
		"multi error containing the root": {
			kind:      ErrAmount,
			err:       Append(ErrOverflow, Wrap(ErrAmount, "bad")),
			wantMatch: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantMatch {
				t.Fatalf("unexpected match result: %v", got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "ignored"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %v", err)
	}
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(ErrUnauthorized, "signer missing")
	const want = "signer missing: unauthorized"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrNotFound, "inner")
	st := stackTrace(err)
	if st == nil {
		t.Fatal("no stack trace attached")
	}
	// A second wrap must not shadow the original trace.
	err = Wrap(err, "outer")
	if got := stackTrace(err); fmt.Sprintf("%v", got) != fmt.Sprintf("%v", st) {
		t.Fatal("stack trace was replaced by the outer wrap")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(2, "duplicate of ErrAddress")
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("check this out")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %v", err)
	}
}

func TestCauseIsReachable(t *testing.T) {
	err := Wrap(ErrConflict, "store moved")
	if got := errors.Cause(err); got != ErrConflict {
		t.Fatalf("want root cause, got %v", got)
	}
}
