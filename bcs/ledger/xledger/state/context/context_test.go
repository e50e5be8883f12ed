package context

import (
	"testing"

	"github.com/xuperchain/xcontrol/lib/logs"
)

func TestNewStateCtx(t *testing.T) {
	if _, err := NewStateCtx("", logs.NewDiscardLogger(), 1, 1); err == nil {
		t.Fatal("expect error for empty bcname")
	}
	if _, err := NewStateCtx("xuper", logs.NewDiscardLogger(), 0, 1); err == nil {
		t.Fatal("expect error for zero cache size")
	}
	ctx, err := NewStateCtx("xuper", logs.NewDiscardLogger(), 16, 8)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.BCName != "xuper" || ctx.GetLog() == nil || ctx.GetTimer() == nil {
		t.Fatalf("unexpected ctx: %+v", ctx)
	}
}
