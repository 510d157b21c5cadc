// Package intcode implements the intcode computer from Advent of Code 2019.
//
// A Machine executes one instruction at a time against its own copy of a
// program. Every output instruction suspends the machine (it becomes Halted)
// so that a caller can pass the value on, possibly to another Machine, before
// calling Resume. This is enough to run several machines in lock-step
// without goroutines; see Chain and Feedback.
package intcode

import "fmt"

// State is the execution state of a Machine.
type State int

const (
	// Running machines may be stepped.
	Running State = iota
	// Halted machines have just produced an output and wait for Resume.
	Halted
	// Terminated machines have executed a halt instruction.
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// A Machine is an intcode computer. The zero value is a Machine with empty
// memory; call Load before stepping it.
type Machine struct {
	mem    []int64
	ip     int
	input  []int64
	output int64
	state  State
	cycles int64
	err    error // sticky execution error
}

// Load replaces m's memory with a copy of prog and resets everything else:
// the instruction pointer is 0, the input queue is empty, the output is 0,
// and the state is Running. Load may be called at any time.
func (m *Machine) Load(prog []int64) {
	m.mem = append(m.mem[:0:0], prog...)
	m.ip = 0
	m.input = m.input[:0]
	m.output = 0
	m.state = Running
	m.cycles = 0
	m.err = nil
}

// PushInput appends vs to the back of the input queue.
func (m *Machine) PushInput(vs ...int64) {
	m.input = append(m.input, vs...)
}

// Step executes the instruction at the instruction pointer.
// It returns an error wrapping ErrState if m is not Running.
//
// Any other error (ErrDecode, ErrStarved, ErrBounds) is fatal: the
// instruction pointer is left on the failing instruction and every
// subsequent Step returns the same error until the next Load.
func (m *Machine) Step() error {
	if m.err != nil {
		return m.err
	}
	if m.state != Running {
		return fmt.Errorf("%w: step called on %s machine", ErrState, m.state)
	}
	if err := m.exec(); err != nil {
		m.err = err
		return err
	}
	m.cycles++
	return nil
}

// Run steps m until it is no longer Running: that is, until it produces
// an output (Halted) or executes a halt instruction (Terminated).
func (m *Machine) Run() error {
	for {
		if err := m.Step(); err != nil {
			return err
		}
		if m.state != Running {
			return nil
		}
	}
}

// Resume moves a Halted machine back to Running.
func (m *Machine) Resume() error {
	if m.state != Halted {
		return fmt.Errorf("%w: resume called on %s machine", ErrState, m.state)
	}
	m.state = Running
	return nil
}

func (m *Machine) State() State     { return m.state }
func (m *Machine) Halted() bool     { return m.state == Halted }
func (m *Machine) Terminated() bool { return m.state == Terminated }

// Output returns the most recently produced output, or 0 if there has been
// none since Load.
func (m *Machine) Output() int64 { return m.output }

// IP returns the instruction pointer.
func (m *Machine) IP() int { return m.ip }

// Pending returns the number of queued inputs.
func (m *Machine) Pending() int { return len(m.input) }

// Cycles returns the number of instructions executed since Load.
func (m *Machine) Cycles() int64 { return m.cycles }

// Err returns the fatal error that stopped m, if any.
func (m *Machine) Err() error { return m.err }

// Read returns the value at addr.
func (m *Machine) Read(addr int) (int64, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	return m.mem[addr], nil
}

// Write sets the value at addr.
func (m *Machine) Write(addr int, v int64) error {
	if err := m.check(addr); err != nil {
		return err
	}
	m.mem[addr] = v
	return nil
}

// Memory returns a copy of m's memory.
func (m *Machine) Memory() []int64 {
	return append([]int64(nil), m.mem...)
}

// Next decodes the instruction at the instruction pointer without
// executing it.
func (m *Machine) Next() (Instruction, error) {
	word, err := m.Read(m.ip)
	if err != nil {
		return Instruction{}, err
	}
	insn, err := Decode(word)
	if err != nil {
		return insn, fmt.Errorf("%w at %d", err, m.ip)
	}
	return insn, nil
}

func (m *Machine) check(addr int) error {
	if addr < 0 || addr >= len(m.mem) {
		return fmt.Errorf("%w: address %d (memory size %d)", ErrBounds, addr, len(m.mem))
	}
	return nil
}

// param returns the value of the ith parameter (0-based) of the
// instruction at the instruction pointer.
func (m *Machine) param(insn Instruction, i int) (int64, error) {
	v, err := m.Read(m.ip + 1 + i)
	if err != nil {
		return 0, err
	}
	switch insn.Modes[i] {
	case Position:
		if int64(int(v)) != v {
			return 0, fmt.Errorf("%w: address %d", ErrBounds, v)
		}
		return m.Read(int(v))
	case Immediate:
		return v, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %d for parameter %d at %d", ErrDecode, insn.Modes[i], i+1, m.ip)
}

// dst returns the address named by the ith parameter. Destinations are
// always literal addresses, whatever their mode digit says.
func (m *Machine) dst(i int) (int, error) {
	v, err := m.Read(m.ip + 1 + i)
	if err != nil {
		return 0, err
	}
	addr := int(v)
	if int64(addr) != v {
		return 0, fmt.Errorf("%w: address %d", ErrBounds, v)
	}
	if err := m.check(addr); err != nil {
		return 0, err
	}
	return addr, nil
}

// params reads the first n parameters of insn.
func (m *Machine) params(insn Instruction, n int) ([2]int64, error) {
	var ps [2]int64
	for i := 0; i < n; i++ {
		v, err := m.param(insn, i)
		if err != nil {
			return ps, err
		}
		ps[i] = v
	}
	return ps, nil
}

func (m *Machine) exec() error {
	insn, err := m.Next()
	if err != nil {
		return err
	}
	switch insn.Op {
	case Add, Mul, LessThan, Equals:
		ps, err := m.params(insn, 2)
		if err != nil {
			return err
		}
		addr, err := m.dst(2)
		if err != nil {
			return err
		}
		a, b := ps[0], ps[1]
		var v int64
		switch insn.Op {
		case Add:
			v = a + b
		case Mul:
			v = a * b
		case LessThan:
			if a < b {
				v = 1
			}
		case Equals:
			if a == b {
				v = 1
			}
		}
		m.mem[addr] = v
		m.ip += 4
	case Input:
		addr, err := m.dst(0)
		if err != nil {
			return err
		}
		if len(m.input) == 0 {
			return fmt.Errorf("%w: input instruction at %d", ErrStarved, m.ip)
		}
		m.mem[addr] = m.input[0]
		m.input = m.input[1:]
		m.ip += 2
	case Output:
		v, err := m.param(insn, 0)
		if err != nil {
			return err
		}
		m.output = v
		m.ip += 2
		m.state = Halted
	case JumpIfTrue, JumpIfFalse:
		ps, err := m.params(insn, 2)
		if err != nil {
			return err
		}
		cond, target := ps[0], ps[1]
		if (cond != 0) == (insn.Op == JumpIfTrue) {
			if int64(int(target)) != target {
				return fmt.Errorf("%w: jump target %d", ErrBounds, target)
			}
			m.ip = int(target)
		} else {
			m.ip += 3
		}
	case Halt:
		m.state = Terminated
	default:
		panic("unreachable")
	}
	return nil
}

// Exec runs a fresh copy of prog with the given inputs until it
// terminates, resuming after every output, and returns the outputs in the
// order they were produced.
func Exec(prog []int64, inputs ...int64) ([]int64, error) {
	var m Machine
	m.Load(prog)
	m.PushInput(inputs...)
	var outputs []int64
	for {
		if err := m.Run(); err != nil {
			return outputs, err
		}
		if m.Terminated() {
			return outputs, nil
		}
		outputs = append(outputs, m.Output())
		if err := m.Resume(); err != nil {
			return outputs, err
		}
	}
}
