package kfmt

import (
	"bytes"
	"errors"
	"nanokernel/kernel"
	"testing"
)

func TestPanic(t *testing.T) {
	defer func() {
		cpuHaltFn = func() {}
		outputSink = nil
	}()

	var cpuHaltCalled bool
	cpuHaltFn = func() {
		cpuHaltCalled = true
	}

	var buf bytes.Buffer
	SetOutputSink(&buf)

	t.Run("with *kernel.Error", func(t *testing.T) {
		cpuHaltCalled = false
		buf.Reset()
		err := &kernel.Error{Module: "test", Message: "panic test"}

		Panic(err)

		exp := "\n-----------------------------------\n[test] unrecoverable error: panic test\n*** kernel panic: system halted ***\n-----------------------------------"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu halt hook to be called by Panic")
		}
	})

	t.Run("with error", func(t *testing.T) {
		cpuHaltCalled = false
		buf.Reset()
		err := errors.New("go error")

		Panic(err)

		exp := "\n-----------------------------------\n[rt] unrecoverable error: go error\n*** kernel panic: system halted ***\n-----------------------------------"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu halt hook to be called by Panic")
		}
	})

	t.Run("with string", func(t *testing.T) {
		cpuHaltCalled = false
		buf.Reset()

		Panic("string error")

		exp := "\n-----------------------------------\n[rt] unrecoverable error: string error\n*** kernel panic: system halted ***\n-----------------------------------"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu halt hook to be called by Panic")
		}
	})

	t.Run("without error", func(t *testing.T) {
		cpuHaltCalled = false
		buf.Reset()

		Panic(nil)

		exp := "\n-----------------------------------\n*** kernel panic: system halted ***\n-----------------------------------"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu halt hook to be called by Panic")
		}
	})
}

func TestAssert(t *testing.T) {
	defer func() {
		cpuHaltFn = func() {}
		outputSink = nil
	}()

	var cpuHaltCalled bool
	cpuHaltFn = func() { cpuHaltCalled = true }

	var buf bytes.Buffer
	SetOutputSink(&buf)

	t.Run("condition holds", func(t *testing.T) {
		cpuHaltCalled = false
		buf.Reset()

		Assert(true, "sched", "unreachable")

		if cpuHaltCalled {
			t.Fatal("Assert must not panic when cond is true")
		}
		if buf.Len() != 0 {
			t.Fatalf("expected no output; got %q", buf.String())
		}
	})

	t.Run("condition fails", func(t *testing.T) {
		cpuHaltCalled = false
		buf.Reset()

		Assert(false, "sched", "illegal transition %d -> %d", 2, 9)

		if !cpuHaltCalled {
			t.Fatal("Assert must panic when cond is false")
		}

		exp := "\n-----------------------------------\n[sched] unrecoverable error: illegal transition 2 -> 9\n*** kernel panic: system halted ***\n-----------------------------------"
		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}
	})
}
