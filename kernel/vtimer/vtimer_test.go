package vtimer

import "testing"

func TestTimer15FiresEveryTick(t *testing.T) {
	c := NewClock(1)

	for i := 0; i < 4; i++ {
		mask := c.Tick()
		if !Fired(mask, 15) {
			t.Fatalf("tick %d: expected timer 15 to fire at freq=1; mask=%016b", i, mask)
		}
	}
}

func TestSlowerTimersFireLessOften(t *testing.T) {
	c := NewClock(16)

	var timer0Fires, timer4Fires int
	for i := 0; i < 64; i++ {
		mask := c.Tick()
		if Fired(mask, 0) {
			timer0Fires++
		}
		if Fired(mask, 4) {
			timer4Fires++
		}
	}

	if timer4Fires <= timer0Fires {
		t.Fatalf("expected timer 4 to fire more often than the slower timer 0; timer0=%d timer4=%d", timer0Fires, timer4Fires)
	}
	if timer4Fires == 0 {
		t.Fatal("expected timer 4 to fire at least once over 64 ticks at freq=16")
	}
}

func TestZeroFreqDefaultsToOne(t *testing.T) {
	c := NewClock(0)
	mask := c.Tick()
	if !Fired(mask, 15) {
		t.Fatalf("expected zero freq to behave like freq=1 and fire timer 15; mask=%016b", mask)
	}
}
