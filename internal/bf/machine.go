package bf

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EOFPolicy decides what ',' stores when the input is exhausted.
type EOFPolicy int

const (
	EOFUnchanged EOFPolicy = iota // leave the cell as it is
	EOFZero                       // store 0
	EOFMax                        // store 255
)

var eofPolicyNames = []string{"unchanged", "zero", "max"}

func (p EOFPolicy) String() string {
	if p < 0 || int(p) >= len(eofPolicyNames) {
		return fmt.Sprintf("EOFPolicy(%d)", int(p))
	}
	return eofPolicyNames[p]
}

// ParseEOFPolicy maps a policy name to its value. The empty string selects
// EOFUnchanged.
func ParseEOFPolicy(s string) (EOFPolicy, error) {
	if s == "" {
		return EOFUnchanged, nil
	}
	for i, name := range eofPolicyNames {
		if strings.EqualFold(s, name) {
			return EOFPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown eof policy %q", s)
}

// Options configures a Machine. The zero value is a 30000 cell tape with
// no input, no output sink and EOFUnchanged.
type Options struct {
	TapeSize int
	EOF      EOFPolicy
	Input    io.Reader
	// Output, if set, receives every byte written by '.' as it is produced.
	Output io.Writer
}

// Machine executes a Program one instruction at a time. It is not safe for
// concurrent use.
type Machine struct {
	prog *Program
	tape *Tape
	in   io.ByteReader
	sink io.Writer
	eof  EOFPolicy

	out   []byte
	pc    int
	last  Instruction
	ran   bool
	steps uint64
	err   error
}

func NewMachine(prog *Program, opts Options) *Machine {
	m := &Machine{
		prog: prog,
		tape: NewTape(opts.TapeSize),
		sink: opts.Output,
		eof:  opts.EOF,
	}
	switch r := opts.Input.(type) {
	case nil:
		m.in = strings.NewReader("")
	case io.ByteReader:
		m.in = r
	default:
		m.in = bufio.NewReader(r)
	}
	return m
}

// Step executes the next instruction and returns it. After the last
// instruction Step returns ErrHalted. A fatal error stops the machine and is
// returned again by every later call.
func (m *Machine) Step() (Instruction, error) {
	if m.err != nil {
		return Instruction{}, m.err
	}
	if m.pc >= m.prog.Len() {
		return Instruction{}, ErrHalted
	}

	in := m.prog.At(m.pc)
	next := m.pc + 1
	if err := m.execute(in, &next); err != nil {
		m.err = err
		return in, err
	}

	m.pc = next
	m.last = in
	m.ran = true
	m.steps++
	return in, nil
}

func (m *Machine) execute(in Instruction, next *int) error {
	switch in.Op {
	case OpRight:
		if err := m.tape.Move(1); err != nil {
			return m.trap(in, err, nil)
		}
	case OpLeft:
		if err := m.tape.Move(-1); err != nil {
			return m.trap(in, err, nil)
		}
	case OpInc:
		m.tape.Inc()
	case OpDec:
		m.tape.Dec()
	case OpOutput:
		v := m.tape.Read()
		m.out = append(m.out, v)
		if m.sink != nil {
			if _, err := m.sink.Write([]byte{v}); err != nil {
				return m.trap(in, ErrIO, err)
			}
		}
	case OpInput:
		v, err := m.in.ReadByte()
		switch {
		case err == nil:
			m.tape.Write(v)
		case errors.Is(err, io.EOF):
			switch m.eof {
			case EOFZero:
				m.tape.Write(0)
			case EOFMax:
				m.tape.Write(255)
			}
		default:
			return m.trap(in, ErrIO, err)
		}
	case OpLoop:
		if m.tape.Read() == 0 {
			end, _ := m.prog.Match(m.pc)
			*next = end + 1
		}
	case OpEnd:
		if m.tape.Read() != 0 {
			start, _ := m.prog.Match(m.pc)
			*next = start + 1
		}
	}
	return nil
}

func (m *Machine) trap(in Instruction, kind, cause error) error {
	return &RuntimeError{
		Err:     kind,
		Cause:   cause,
		Index:   m.pc,
		Pos:     in.Pos,
		Op:      in.Op,
		Pointer: m.tape.Pointer(),
	}
}

// Run steps the machine until the program halts or fails.
func (m *Machine) Run() error {
	return m.RunContext(context.Background())
}

// RunContext is like Run but stops between instructions once ctx is done.
// A read blocked inside ',' is not interrupted.
func (m *Machine) RunContext(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := m.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				return nil
			}
			return err
		}
	}
}

func (m *Machine) Program() *Program {
	return m.prog
}

func (m *Machine) Tape() *Tape {
	return m.tape
}

// Output returns the bytes written so far. The slice must not be modified.
func (m *Machine) Output() []byte {
	return m.out
}

// PC is the index of the next instruction to execute.
func (m *Machine) PC() int {
	return m.pc
}

// Last returns the most recently executed instruction, if any.
func (m *Machine) Last() (Instruction, bool) {
	return m.last, m.ran
}

// Steps counts executed instructions.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Err returns the fatal error that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

func (m *Machine) Halted() bool {
	return m.err != nil || m.pc >= m.prog.Len()
}
