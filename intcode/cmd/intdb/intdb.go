// Command intdb is an interactive debugger for intcode programs.
//
// Usage:
//
//	intdb program.txt
//
// Type help at the prompt for the list of commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/puzzles/intcode"
	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) != 2 {
		log.Fatal("usage: intdb program.txt")
	}
	prog, err := loadProgram(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:      "(intdb) ",
		HistoryFile: historyFile(),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer l.Close()

	d := newDebugger(prog, l.Stdout())
	for {
		line, err := l.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			return
		default:
			log.Println("Readline error:", err)
			continue
		}
		if !d.exec(line) {
			return
		}
	}
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "intdb_history")
}

func loadProgram(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	prog, err := intcode.ReadProgram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", name, err)
	}
	return prog, nil
}

type debugger struct {
	prog    []int64
	m       intcode.Machine
	w       io.Writer
	outputs []int64
}

func newDebugger(prog []int64, w io.Writer) *debugger {
	d := &debugger{prog: prog, w: w}
	d.m.Load(prog)
	return d
}

type command struct {
	usage string
	help  string
	run   func(d *debugger, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"step":   {"step [n]", "execute n instructions (default 1)", (*debugger).step},
		"run":    {"run", "run until the next output or halt", (*debugger).run},
		"resume": {"resume", "resume after an output", (*debugger).resume},
		"in":     {"in v...", "queue input values", (*debugger).input},
		"out":    {"out", "print all outputs so far", (*debugger).out},
		"mem":    {"mem addr [n]", "print n memory values starting at addr", (*debugger).mem},
		"poke":   {"poke addr v", "set memory at addr to v", (*debugger).poke},
		"next":   {"next", "show the next instruction", (*debugger).next},
		"state":  {"state", "show the machine state", (*debugger).state},
		"reload": {"reload", "reload the program and clear all state", (*debugger).reload},
		"help":   {"help", "show this help", (*debugger).help},
	}
}

// exec runs one command line and reports whether the session should
// continue.
func (d *debugger) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	if fields[0] == "quit" || fields[0] == "q" {
		return false
	}
	cmd, ok := commands[fields[0]]
	if !ok {
		fmt.Fprintf(d.w, "unknown command %q (try help)\n", fields[0])
		return true
	}
	if err := cmd.run(d, fields[1:]); err != nil {
		fmt.Fprintln(d.w, "error:", err)
	}
	return true
}

func parseInts(args []string) ([]int64, error) {
	vs := make([]int64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", arg)
		}
		vs[i] = v
	}
	return vs, nil
}

// afterExec reports an output, if the last instruction produced one.
func (d *debugger) afterExec() {
	switch d.m.State() {
	case intcode.Halted:
		d.outputs = append(d.outputs, d.m.Output())
		fmt.Fprintf(d.w, "output: %d\n", d.m.Output())
	case intcode.Terminated:
		fmt.Fprintf(d.w, "terminated after %s instructions\n", humanize.Comma(d.m.Cycles()))
	}
}

func (d *debugger) step(args []string) error {
	n := int64(1)
	if len(args) > 0 {
		vs, err := parseInts(args[:1])
		if err != nil {
			return err
		}
		if n = vs[0]; n < 1 {
			return fmt.Errorf("bad step count %d", n)
		}
	}
	for i := int64(0); i < n; i++ {
		if err := d.m.Step(); err != nil {
			return err
		}
		if d.m.State() != intcode.Running {
			break
		}
	}
	d.afterExec()
	return nil
}

func (d *debugger) run(_ []string) error {
	if err := d.m.Run(); err != nil {
		return err
	}
	d.afterExec()
	return nil
}

func (d *debugger) resume(_ []string) error {
	return d.m.Resume()
}

func (d *debugger) input(args []string) error {
	vs, err := parseInts(args)
	if err != nil {
		return err
	}
	d.m.PushInput(vs...)
	return nil
}

func (d *debugger) out(_ []string) error {
	fmt.Fprintln(d.w, d.outputs)
	return nil
}

func (d *debugger) mem(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: mem addr [n]")
	}
	vs, err := parseInts(args)
	if err != nil {
		return err
	}
	addr, n := int(vs[0]), 1
	if len(vs) > 1 {
		n = int(vs[1])
	}
	for i := 0; i < n; i++ {
		v, err := d.m.Read(addr + i)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.w, "%6d: %d\n", addr+i, v)
	}
	return nil
}

func (d *debugger) poke(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: poke addr v")
	}
	vs, err := parseInts(args)
	if err != nil {
		return err
	}
	return d.m.Write(int(vs[0]), vs[1])
}

func (d *debugger) next(_ []string) error {
	insn, err := d.m.Next()
	if err != nil {
		return err
	}
	n := insn.Op.Arity()
	operands := make([]string, n)
	for i := range operands {
		v, err := d.m.Read(d.m.IP() + 1 + i)
		if err != nil {
			return err
		}
		operands[i] = strconv.FormatInt(v, 10)
	}
	fmt.Fprintf(d.w, "%d: %s  [%s]\n", d.m.IP(), insn, strings.Join(operands, " "))
	return nil
}

// snapshot is the debugger's view of a machine, printed by state.
type snapshot struct {
	State   intcode.State
	IP      int
	Output  int64
	Pending int
	Cycles  string
	Err     error
}

func (d *debugger) state(_ []string) error {
	s := snapshot{
		State:   d.m.State(),
		IP:      d.m.IP(),
		Output:  d.m.Output(),
		Pending: d.m.Pending(),
		Cycles:  humanize.Comma(d.m.Cycles()),
		Err:     d.m.Err(),
	}
	fmt.Fprintf(d.w, "%# v\n", pretty.Formatter(s))
	return nil
}

func (d *debugger) reload(_ []string) error {
	d.m.Load(d.prog)
	d.outputs = nil
	return nil
}

func (d *debugger) help(_ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(d.w, "  %-14s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintf(d.w, "  %-14s %s\n", "quit", "exit the debugger")
	return nil
}
