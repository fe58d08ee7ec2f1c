/*
 * pdp8i - Front panel command parser
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

// Package console implements the front panel's command channel as an
// abbreviated-command line language: start, loadaddress, deposit,
// examine, continue, stop, switches, show, quit. Command matching
// accepts any unambiguous prefix of a command name, the same
// minimum-unique-prefix rule the teacher's command/parser uses.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"pdp8i/internal/disassemble"
	"pdp8i/internal/machine"
)

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *machine.Machine) (bool, error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "start", min: 3, process: start},
	{name: "loadaddress", min: 4, process: loadAddress},
	{name: "deposit", min: 3, process: deposit},
	{name: "examine", min: 2, process: examine},
	{name: "continue", min: 1, process: cont},
	{name: "stop", min: 3, process: stop},
	{name: "step", min: 2, process: step},
	{name: "switches", min: 2, process: switches},
	{name: "show", min: 2, process: show},
	{name: "quit", min: 4, process: quit},
}

// ProcessCommand parses and executes one command line against m. The
// bool return reports whether the REPL should exit (the quit command).
func ProcessCommand(commandLine string, m *machine.Machine) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, m)
}

// CompleteCmd returns the command names matching the word typed so
// far, for line-editor tab completion.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()
	match := matchList(name)
	names := make([]string, len(match))
	for i, m := range match {
		names[i] = m.name
	}
	return names
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) || len(name) < c.min {
		return false
	}
	return c.name[:len(name)] == name
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			match = append(match, c)
		}
	}
	return match
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line) || l.line[l.pos] == '#'
}

func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return l.line[start:l.pos]
}

// getOctal reads the next word as a 12-bit octal value, or returns ok
// false if the line has no more words.
func (l *cmdLine) getOctal() (uint16, bool, error) {
	w := l.getWord()
	if w == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(w, 8, 12)
	if err != nil {
		return 0, true, fmt.Errorf("not an octal value: %s", w)
	}
	return uint16(v), true, nil
}

func start(l *cmdLine, m *machine.Machine) (bool, error) {
	addr, given, err := l.getOctal()
	if err != nil {
		return false, err
	}
	if given {
		m.SetSwitches(addr)
	}
	m.LoadAddressFromSwitches()
	m.Submit(machine.Packet{Cmd: machine.CmdStart, Address: m.Snapshot().PC})
	return false, nil
}

func loadAddress(l *cmdLine, m *machine.Machine) (bool, error) {
	addr, given, err := l.getOctal()
	if err != nil {
		return false, err
	}
	if given {
		m.SetSwitches(addr)
	}
	m.LoadAddressFromSwitches()
	return false, nil
}

func deposit(l *cmdLine, m *machine.Machine) (bool, error) {
	v, given, err := l.getOctal()
	if err != nil {
		return false, err
	}
	if given {
		m.SetSwitches(v)
	}
	m.DepositAtPC()
	return false, nil
}

func examine(_ *cmdLine, m *machine.Machine) (bool, error) {
	addr := m.Snapshot().PC
	cell := m.ExamineAtPC()
	fmt.Printf("%04o: %04o  %s\n", addr, cell.Data, disassemble.Decode(addr, cell.Data))
	return false, nil
}

func cont(_ *cmdLine, m *machine.Machine) (bool, error) {
	m.Submit(machine.Packet{Cmd: machine.CmdContinue})
	return false, nil
}

func stop(_ *cmdLine, m *machine.Machine) (bool, error) {
	m.Submit(machine.Packet{Cmd: machine.CmdStop})
	return false, nil
}

func step(_ *cmdLine, m *machine.Machine) (bool, error) {
	m.Submit(machine.Packet{Cmd: machine.CmdStep})
	return false, nil
}

func switches(l *cmdLine, m *machine.Machine) (bool, error) {
	v, given, err := l.getOctal()
	if err != nil {
		return false, err
	}
	if !given {
		return false, errors.New("switches requires an octal value")
	}
	m.SetSwitches(v)
	return false, nil
}

func show(_ *cmdLine, m *machine.Machine) (bool, error) {
	s := m.Snapshot()
	fmt.Printf("PC=%04o AC=%04o L=%o IF=%o DF=%o SR=%04o halt=%v idle=%v running=%v\n",
		s.PC, s.AC, s.L, s.IF, s.DF, s.SR, s.Halt, s.Idle, s.Running)
	return false, nil
}

func quit(_ *cmdLine, _ *machine.Machine) (bool, error) {
	return true, nil
}
