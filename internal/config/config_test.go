package config

import (
	"os"
	"path/filepath"
	"testing"

	"pdp8i/internal/cpu"
	"pdp8i/internal/memory"
	"pdp8i/internal/trace"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pdp8i.conf")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadParsesFieldsSwitchesAndTrace(t *testing.T) {
	path := writeConfig(t, "# comment\nFIELDS 2\nSWITCHES 7777\nTRACE inst iot\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fields != 2 {
		t.Errorf("Fields = %d, want 2", cfg.Fields)
	}
	if cfg.Switches != 07777 {
		t.Errorf("Switches = %04o, want 07777", cfg.Switches)
	}
	if cfg.TraceMask != trace.Inst|trace.IOT {
		t.Errorf("TraceMask = %b, want Inst|IOT", cfg.TraceMask)
	}
}

func TestLoadRejectsUnknownDirective(t *testing.T) {
	path := writeConfig(t, "BOGUS 1\n")
	if _, err := Load(path); err == nil {
		t.Errorf("Load succeeded, want error for unknown directive")
	}
}

func TestApplyDispatchesToRegisteredDevice(t *testing.T) {
	var gotName string
	var gotOpts []Option
	RegisterDevice("TESTDEV", func(c *cpu.CPU, opts []Option) error {
		gotName = "TESTDEV"
		gotOpts = opts
		return nil
	})

	path := writeConfig(t, "DEVICE testdev addr=17,extra\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := cpu.New(memory.New(1))
	if err := cfg.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if gotName != "TESTDEV" {
		t.Errorf("device not dispatched")
	}
	if len(gotOpts) != 1 || gotOpts[0].Name != "addr" || gotOpts[0].EqualOpt != "17" {
		t.Errorf("opts = %+v, want one addr=17 option", gotOpts)
	}
	if len(gotOpts[0].Value) != 1 || gotOpts[0].Value[0] != "extra" {
		t.Errorf("opts[0].Value = %+v, want [extra]", gotOpts[0].Value)
	}
}

func TestApplySetsSwitchRegister(t *testing.T) {
	path := writeConfig(t, "SWITCHES 1234\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c := cpu.New(memory.New(1))
	if err := cfg.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if c.SR != 01234 {
		t.Errorf("SR = %04o, want 01234", c.SR)
	}
}
