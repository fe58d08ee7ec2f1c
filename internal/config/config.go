/*
 * pdp8i - Configuration file parser
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package config reads the front panel's startup configuration file: how
// many memory fields to build, the switch register's power-up setting,
// which IOT peripherals to attach, and where trace/debug output goes.
// Peripheral packages register themselves from an init function the
// same way the teacher's device models register with configparser, so
// this package never imports internal/devices/... directly.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"pdp8i/internal/cpu"
	"pdp8i/internal/trace"
)

// Option is one whitespace-separated word of the form
// name[=value[,value...]] following a directive's first word, e.g. "device teleprinter port=1" parses "port=1" as an Option
// with Name "port" and EqualOpt "1".
type Option struct {
	Name     string
	EqualOpt string
	Value    []string
}

// attachFunc creates and attaches a peripheral to c according to opts.
// Registered by a device package's init function.
type attachFunc func(c *cpu.CPU, opts []Option) error

var devices = map[string]attachFunc{}

// RegisterDevice makes name available as a "device <name> ..." line.
// name is matched case-insensitively. Intended to be called from a
// peripheral package's init function.
func RegisterDevice(name string, fn attachFunc) {
	devices[strings.ToUpper(name)] = fn
}

var traceNames = map[string]trace.Mask{
	"INST":      trace.Inst,
	"IOT":       trace.IOT,
	"INTERRUPT": trace.Interrupt,
	"ASSEMBLE":  trace.Assemble,
}

type deviceDirective struct {
	name string
	opts []Option
}

// Config is the parsed contents of a configuration file, not yet
// applied to a running CPU.
type Config struct {
	Fields    int
	Switches  uint16
	DebugFile string
	TraceMask trace.Mask

	devices []deviceDirective
}

// Load reads and parses the named configuration file. It does not
// touch a CPU; call Apply once the machine has been constructed with
// the Fields it reports.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{Fields: 1, Switches: 0}
	reader := bufio.NewReader(file)
	lineNumber := 0
	for {
		text, err := reader.ReadString('\n')
		lineNumber++
		if len(text) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if perr := cfg.parseLine(text, lineNumber); perr != nil {
			return nil, perr
		}
		if err != nil {
			break
		}
	}
	return cfg, nil
}

// Apply attaches the configured switch register and peripherals to c,
// and opens trace output if requested. Call once, after the CPU (and
// its memory, sized to cfg.Fields) has been constructed.
func (cfg *Config) Apply(c *cpu.CPU) error {
	c.SR = cfg.Switches
	if cfg.DebugFile != "" {
		if err := trace.Open(cfg.DebugFile); err != nil {
			return err
		}
	}
	if cfg.TraceMask != 0 {
		trace.Set(cfg.TraceMask)
	}
	for _, d := range cfg.devices {
		attach, ok := devices[strings.ToUpper(d.name)]
		if !ok {
			return fmt.Errorf("unknown device: %s", d.name)
		}
		if err := attach(c, d.opts); err != nil {
			return fmt.Errorf("device %s: %w", d.name, err)
		}
	}
	return nil
}

type optionLine struct {
	line string
	pos  int
}

func (cfg *Config) parseLine(text string, lineNumber int) error {
	ol := optionLine{line: text}
	ol.skipSpace()
	if ol.isEOL() {
		return nil
	}

	keyword := strings.ToUpper(ol.word())
	switch keyword {
	case "":
		return nil
	case "FIELDS":
		ol.skipSpace()
		n, err := strconv.Atoi(ol.word())
		if err != nil || n < 1 || n > 8 {
			return fmt.Errorf("config line %d: FIELDS requires a count 1-8", lineNumber)
		}
		cfg.Fields = n
	case "SWITCHES":
		ol.skipSpace()
		v, err := strconv.ParseUint(ol.word(), 8, 12)
		if err != nil {
			return fmt.Errorf("config line %d: SWITCHES requires an octal value", lineNumber)
		}
		cfg.Switches = uint16(v)
	case "DEBUGFILE":
		ol.skipSpace()
		name, ok := ol.parseQuoteString()
		if !ok {
			return fmt.Errorf("config line %d: DEBUGFILE requires a file name", lineNumber)
		}
		cfg.DebugFile = name
	case "TRACE":
		opts, err := ol.parseOptions()
		if err != nil {
			return fmt.Errorf("config line %d: %w", lineNumber, err)
		}
		for _, opt := range opts {
			mask, ok := traceNames[strings.ToUpper(opt.Name)]
			if !ok {
				return fmt.Errorf("config line %d: unknown trace subsystem %s", lineNumber, opt.Name)
			}
			cfg.TraceMask |= mask
		}
	case "DEVICE":
		ol.skipSpace()
		name := ol.word()
		if name == "" {
			return fmt.Errorf("config line %d: DEVICE requires a peripheral name", lineNumber)
		}
		opts, err := ol.parseOptions()
		if err != nil {
			return fmt.Errorf("config line %d: %w", lineNumber, err)
		}
		cfg.devices = append(cfg.devices, deviceDirective{name: name, opts: opts})
	default:
		return fmt.Errorf("config line %d: unknown directive %s", lineNumber, keyword)
	}
	return nil
}

func (ol *optionLine) skipSpace() {
	for !ol.isEOL() && unicode.IsSpace(rune(ol.line[ol.pos])) {
		ol.pos++
	}
}

func (ol *optionLine) isEOL() bool {
	if ol.pos >= len(ol.line) {
		return true
	}
	return ol.line[ol.pos] == '#' || ol.line[ol.pos] == '\n'
}

// word reads a run of letters/digits/./- starting at the current
// position, leaving pos at the first character that doesn't fit.
func (ol *optionLine) word() string {
	start := ol.pos
	for !ol.isEOL() {
		by := ol.line[ol.pos]
		if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) || by == '.' || by == '-' || by == '_' {
			ol.pos++
			continue
		}
		break
	}
	return ol.line[start:ol.pos]
}

// parseQuoteString reads either a "quoted string" or a bare word.
func (ol *optionLine) parseQuoteString() (string, bool) {
	ol.skipSpace()
	if ol.isEOL() {
		return "", false
	}
	if ol.line[ol.pos] != '"' {
		w := ol.word()
		return w, w != ""
	}
	ol.pos++
	start := ol.pos
	for ol.pos < len(ol.line) && ol.line[ol.pos] != '"' {
		ol.pos++
	}
	if ol.pos >= len(ol.line) {
		return "", false
	}
	value := ol.line[start:ol.pos]
	ol.pos++
	return value, true
}

// parseOptions collects whitespace-separated name[=value] tokens until
// end of line, the rest of a DEVICE or TRACE directive.
func (ol *optionLine) parseOptions() ([]Option, error) {
	var opts []Option
	for {
		ol.skipSpace()
		if ol.isEOL() {
			return opts, nil
		}
		name := ol.word()
		if name == "" {
			return nil, fmt.Errorf("invalid option near column %d", ol.pos)
		}
		opt := Option{Name: name}
		if !ol.isEOL() && ol.line[ol.pos] == '=' {
			ol.pos++
			value, ok := ol.parseQuoteString()
			if !ok {
				return nil, fmt.Errorf("option %s missing value", name)
			}
			opt.EqualOpt = value
			for !ol.isEOL() && ol.line[ol.pos] == ',' {
				ol.pos++
				ol.skipSpace()
				v, _ := ol.parseQuoteString()
				if v != "" {
					opt.Value = append(opt.Value, v)
				}
			}
		}
		opts = append(opts, opt)
	}
}
