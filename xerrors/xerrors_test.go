package xerrors

import (
	"testing"
)

func TestWrap(t *testing.T) {
	t.Run("wrap nil returns nil", func(t *testing.T) {
		if Wrap(nil, "ctx") != nil {
			t.Error("Expected nil when wrapping nil error")
		}
	})

	t.Run("wrapped error keeps chain", func(t *testing.T) {
		base := New("boom")
		err := Wrap(base, "doing thing")
		if !Is(err, base) {
			t.Error("Expected wrapped error to match base via Is")
		}
		if err.Error() != "doing thing: boom" {
			t.Errorf("Unexpected message: %s", err.Error())
		}
	})

	t.Run("wrapf formats context", func(t *testing.T) {
		base := New("boom")
		err := Wrapf(base, "attempt %d", 3)
		if err.Error() != "attempt 3: boom" {
			t.Errorf("Unexpected message: %s", err.Error())
		}
	})
}

func TestWithCode(t *testing.T) {
	t.Run("code nil returns nil", func(t *testing.T) {
		if WithCode(nil, "c") != nil {
			t.Error("Expected nil when coding nil error")
		}
	})

	t.Run("code is extractable", func(t *testing.T) {
		base := New("boom")
		err := WithCode(base, "machine_id_unavailable")
		if GetCode(err) != "machine_id_unavailable" {
			t.Errorf("Unexpected code: %s", GetCode(err))
		}
		if !Is(err, base) {
			t.Error("Expected coded error to match base via Is")
		}
	})

	t.Run("code survives further wrapping", func(t *testing.T) {
		base := New("boom")
		err := Wrap(WithCode(base, "c1"), "outer")
		if GetCode(err) != "c1" {
			t.Errorf("Unexpected code: %s", GetCode(err))
		}
	})

	t.Run("no code yields empty string", func(t *testing.T) {
		if GetCode(New("plain")) != "" {
			t.Error("Expected empty code for plain error")
		}
	})
}

func TestMust(t *testing.T) {
	t.Run("returns value without error", func(t *testing.T) {
		v := Must(42, nil)
		if v != 42 {
			t.Errorf("Unexpected value: %d", v)
		}
	})

	t.Run("panics on error", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic")
			}
		}()
		Must(0, New("boom"))
	})
}
