package clock

import "testing"

func TestCLSKSkipsAndClearsOnlyWhenFlagSet(t *testing.T) {
	c := &Clock{}
	if r := c.Operate(3, 0); r.Skip {
		t.Errorf("CLSK skipped with no flag set")
	}
	c.flag.Store(true)
	r := c.Operate(3, 0)
	if !r.Skip {
		t.Errorf("CLSK did not skip with flag set")
	}
	if c.flag.Load() {
		t.Errorf("CLSK did not clear the flag")
	}
}

func TestInterruptRequestNeedsBothFlagAndEnable(t *testing.T) {
	c := &Clock{}
	c.flag.Store(true)
	if c.InterruptRequest() {
		t.Errorf("interrupt requested before CLEI enabled it")
	}
	c.Operate(1, 0) // CLEI
	if !c.InterruptRequest() {
		t.Errorf("interrupt not requested once enabled with flag set")
	}
	c.Operate(2, 0) // CLDI
	if c.InterruptRequest() {
		t.Errorf("interrupt still requested after CLDI")
	}
}
