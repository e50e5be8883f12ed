package common

import (
	"errors"
	"testing"
)

func TestCastError(t *testing.T) {
	if CastError(nil) != nil {
		t.Fatal("nil error should cast to nil")
	}
	err := CastError(ErrParameter.More("missing %s", "to"))
	if !err.Equal(ErrParameter) {
		t.Fatalf("unexpected error %v", err)
	}
	if err.Error() != "Err:400-40001-param error+missing to" {
		t.Fatalf("unexpected message %s", err)
	}

	err = CastErrorDefault(errors.New("boom"), ErrOpenStateFailed)
	if err.Status != ErrStatusInternalErr || err.Msg != "open state failed+boom" {
		t.Fatalf("unexpected error %v", err)
	}

	err = CastError(errors.New("boom"))
	if !err.Equal(ErrUnknown) {
		t.Fatalf("unexpected error %v", err)
	}
}
