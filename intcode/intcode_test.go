package intcode

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func TestDecode(t *testing.T) {
	for _, tt := range []struct {
		word int64
		want Instruction
	}{
		{1, Instruction{Op: Add}},
		{99, Instruction{Op: Halt}},
		{1002, Instruction{Op: Mul, Modes: [3]Mode{Position, Immediate, Position}}},
		{1101, Instruction{Op: Add, Modes: [3]Mode{Immediate, Immediate, Position}}},
		{104, Instruction{Op: Output, Modes: [3]Mode{Immediate}}},
		{11108, Instruction{Op: Equals, Modes: [3]Mode{Immediate, Immediate, Immediate}}},
	} {
		got, err := Decode(tt.word)
		if err != nil {
			t.Errorf("Decode(%d): %s", tt.word, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Decode(%d): got %v; want %v", tt.word, got, tt.want)
		}
	}
}

func TestDecodeBadOpcode(t *testing.T) {
	for _, word := range []int64{0, 9, 77, 98, 100, -1, -99} {
		if _, err := Decode(word); !errors.Is(err, ErrDecode) {
			t.Errorf("Decode(%d): got err %v; want ErrDecode", word, err)
		}
	}
}

func TestInstructionString(t *testing.T) {
	for _, tt := range []struct {
		word int64
		want string
	}{
		{1002, "mul pos imm dst"},
		{3, "in dst"},
		{104, "out imm"},
		{1105, "jt imm imm"},
		{99, "halt"},
	} {
		insn, err := Decode(tt.word)
		if err != nil {
			t.Fatal(err)
		}
		if got := insn.String(); got != tt.want {
			t.Errorf("Decode(%d).String(): got %q; want %q", tt.word, got, tt.want)
		}
	}
}

func runToEnd(t *testing.T, prog []int64) []int64 {
	t.Helper()
	var m Machine
	m.Load(prog)
	if err := m.Run(); err != nil {
		t.Fatalf("Run(%v): %s", prog, err)
	}
	if !m.Terminated() {
		t.Fatalf("Run(%v): machine is %s; want terminated", prog, m.State())
	}
	return m.Memory()
}

func TestAddMul(t *testing.T) {
	for _, tt := range []struct {
		prog []int64
		want []int64
	}{
		{
			[]int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50},
			[]int64{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50},
		},
		{[]int64{1, 0, 0, 0, 99}, []int64{2, 0, 0, 0, 99}},
		{[]int64{2, 3, 0, 3, 99}, []int64{2, 3, 0, 6, 99}},
		{[]int64{2, 4, 4, 5, 99, 0}, []int64{2, 4, 4, 5, 99, 9801}},
		{[]int64{1, 1, 1, 4, 99, 5, 6, 0, 99}, []int64{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{[]int64{1002, 4, 3, 4, 33}, []int64{1002, 4, 3, 4, 99}},
		{[]int64{1101, 100, -1, 4, 0}, []int64{1101, 100, -1, 4, 99}},
	} {
		got := runToEnd(t, tt.prog)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("memory after running %v:\n%s", tt.prog, pretty.Diff(got, tt.want))
		}
	}
}

func TestLoadCopiesProgram(t *testing.T) {
	prog := []int64{1, 0, 0, 0, 99}
	runToEnd(t, prog)
	if prog[0] != 1 {
		t.Errorf("running modified the loaded program: got prog[0] = %d", prog[0])
	}
}

const (
	// Outputs 1 if the input is 8 and 0 otherwise.
	equal8Position  = "3,9,8,9,10,9,4,9,99,-1,8"
	equal8Immediate = "3,3,1108,-1,8,3,4,3,99"
	// Outputs 1 if the input is less than 8 and 0 otherwise.
	less8Position  = "3,9,7,9,10,9,4,9,99,-1,8"
	less8Immediate = "3,3,1107,-1,8,3,4,3,99"
	// Output 0 if the input is 0 and 1 otherwise.
	jumpPosition  = "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9"
	jumpImmediate = "3,3,1105,-1,9,1101,0,0,12,4,12,99,1"
	// Outputs 999 if the input is below 8, 1000 if it is 8,
	// and 1001 if it is above 8.
	compare8 = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"
)

func TestCompareAndJump(t *testing.T) {
	for _, tt := range []struct {
		prog  string
		input int64
		want  int64
	}{
		{equal8Position, 8, 1},
		{equal8Position, 7, 0},
		{equal8Immediate, 8, 1},
		{equal8Immediate, 9, 0},
		{less8Position, 7, 1},
		{less8Position, 8, 0},
		{less8Immediate, -3, 1},
		{less8Immediate, 100, 0},
		{jumpPosition, 0, 0},
		{jumpPosition, 5, 1},
		{jumpImmediate, 0, 0},
		{jumpImmediate, -5, 1},
		{compare8, 7, 999},
		{compare8, 8, 1000},
		{compare8, 9, 1001},
	} {
		prog, err := Parse(tt.prog)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Exec(prog, tt.input)
		if err != nil {
			t.Errorf("Exec(%s, %d): %s", tt.prog, tt.input, err)
			continue
		}
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("Exec(%s, %d): got outputs %v; want [%d]", tt.prog, tt.input, got, tt.want)
		}
	}
}

func TestSuspendResume(t *testing.T) {
	// Echo the input, then output 7, then halt.
	prog := []int64{3, 9, 4, 9, 104, 7, 99, 0, 0, 0}
	var m Machine
	m.Load(prog)
	m.PushInput(42)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if !m.Halted() {
		t.Fatalf("after first output, machine is %s; want halted", m.State())
	}
	if got, want := m.Output(), int64(42); got != want {
		t.Errorf("got output %d; want %d", got, want)
	}
	if got, want := m.IP(), 4; got != want {
		t.Errorf("got ip %d; want %d", got, want)
	}
	before := m.Memory()

	if err := m.Step(); !errors.Is(err, ErrState) {
		t.Errorf("Step on halted machine: got err %v; want ErrState", err)
	}
	if err := m.Run(); !errors.Is(err, ErrState) {
		t.Errorf("Run on halted machine: got err %v; want ErrState", err)
	}
	if got := m.Memory(); !reflect.DeepEqual(got, before) {
		t.Errorf("suspension changed memory:\n%s", pretty.Diff(got, before))
	}

	if err := m.Resume(); err != nil {
		t.Fatal(err)
	}
	if err := m.Resume(); !errors.Is(err, ErrState) {
		t.Errorf("Resume on running machine: got err %v; want ErrState", err)
	}
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if !m.Halted() || m.Output() != 7 || m.IP() != 6 {
		t.Errorf("after second output: state %s, output %d, ip %d; want halted, 7, 6",
			m.State(), m.Output(), m.IP())
	}
	if err := m.Resume(); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if !m.Terminated() {
		t.Fatalf("machine is %s; want terminated", m.State())
	}
	if err := m.Resume(); !errors.Is(err, ErrState) {
		t.Errorf("Resume on terminated machine: got err %v; want ErrState", err)
	}
	if err := m.Step(); !errors.Is(err, ErrState) {
		t.Errorf("Step on terminated machine: got err %v; want ErrState", err)
	}
	if got, want := m.Cycles(), int64(4); got != want {
		t.Errorf("got %d cycles; want %d", got, want)
	}
}

func TestLoadResets(t *testing.T) {
	a := []int64{3, 0, 3, 0, 4, 0, 99}
	var m Machine
	m.Load(a)
	m.PushInput(5, 6, 7)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if !m.Halted() || m.Output() != 6 {
		t.Fatalf("program A: state %s, output %d; want halted, 6", m.State(), m.Output())
	}

	b := []int64{1, 0, 0, 0, 99}
	m.Load(b)
	type snapshot struct {
		State   State
		IP      int
		Pending int
		Output  int64
		Cycles  int64
		Err     error
	}
	got := snapshot{m.State(), m.IP(), m.Pending(), m.Output(), m.Cycles(), m.Err()}
	want := snapshot{State: Running}
	if got != want {
		t.Errorf("after Load:\n%s", pretty.Diff(got, want))
	}
	mem := runToEnd(t, b)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if got := m.Memory(); !reflect.DeepEqual(got, mem) {
		t.Errorf("reloaded machine memory:\n%s", pretty.Diff(got, mem))
	}
}

func TestErrors(t *testing.T) {
	for _, tt := range []struct {
		name   string
		prog   []int64
		inputs []int64
		want   error
	}{
		{"bad opcode", []int64{77, 0, 0, 0}, nil, ErrDecode},
		{"bad opcode after add", []int64{1, 0, 0, 0, 77}, nil, ErrDecode},
		{"bad mode", []int64{204, 0, 99}, nil, ErrDecode},
		{"starved", []int64{3, 0, 99}, nil, ErrStarved},
		{"starved second read", []int64{3, 0, 3, 0, 99}, []int64{1}, ErrStarved},
		{"read past end", []int64{1, 0, 100, 0, 99}, nil, ErrBounds},
		{"negative address", []int64{1, -1, 0, 0, 99}, nil, ErrBounds},
		{"write past end", []int64{1101, 1, 1, 50, 99}, nil, ErrBounds},
		{"truncated instruction", []int64{1, 0}, nil, ErrBounds},
		{"fall off end", []int64{1101, 1, 1, 0}, nil, ErrBounds},
		{"jump out", []int64{1105, 1, 500}, nil, ErrBounds},
		{"empty", nil, nil, ErrBounds},
	} {
		var m Machine
		m.Load(tt.prog)
		m.PushInput(tt.inputs...)
		err := m.Run()
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got err %v; want %v", tt.name, err, tt.want)
			continue
		}
		// Errors are sticky.
		ip := m.IP()
		if err2 := m.Step(); err2 != err {
			t.Errorf("%s: second Step returned %v; want %v", tt.name, err2, err)
		}
		if m.IP() != ip {
			t.Errorf("%s: ip moved from %d to %d after error", tt.name, ip, m.IP())
		}
		if m.Err() != err {
			t.Errorf("%s: Err() = %v; want %v", tt.name, m.Err(), err)
		}
	}
}

func TestDestinationModeIgnored(t *testing.T) {
	// The third parameter claims immediate mode but is still used as the
	// write address.
	got := runToEnd(t, []int64{11101, 2, 3, 5, 99, 0})
	want := []int64{11101, 2, 3, 5, 99, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("memory:\n%s", pretty.Diff(got, want))
	}
}

func TestReadWrite(t *testing.T) {
	var m Machine
	m.Load([]int64{1, 0, 0, 0, 99})
	if err := m.Write(1, 4); err != nil {
		t.Fatal(err)
	}
	if err := m.Write(2, 4); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	v, err := m.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 198 {
		t.Errorf("got mem[0] = %d; want 198", v)
	}
	if _, err := m.Read(5); !errors.Is(err, ErrBounds) {
		t.Errorf("Read(5): got err %v; want ErrBounds", err)
	}
	if err := m.Write(-1, 0); !errors.Is(err, ErrBounds) {
		t.Errorf("Write(-1): got err %v; want ErrBounds", err)
	}
}

func TestExecOutputs(t *testing.T) {
	// Outputs its input, then twice its input, then three times its input.
	prog := []int64{3, 17, 4, 17, 1, 17, 17, 18, 4, 18, 1, 18, 17, 18, 4, 18, 99, 0, 0}
	got, err := Exec(prog, 6)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{6, 12, 18}; !reflect.DeepEqual(got, want) {
		t.Errorf("got outputs %v; want %v", got, want)
	}

	// A failure partway through still returns the outputs so far.
	got, err = Exec([]int64{104, 1, 104, 2, 77}, 6)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got err %v; want ErrDecode", err)
	}
	if want := []int64{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("got outputs %v; want %v", got, want)
	}
}
