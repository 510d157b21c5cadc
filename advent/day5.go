package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/cespare/puzzles/intcode"
)

func init() {
	register("5a", day5a)
	register("5b", day5b)
}

func day5a(args []string) { day5(args, 1) }
func day5b(args []string) { day5(args, 5) }

func day5(args []string, system int64) {
	code, err := diagnose(readProgram(5, args), system)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(code)
}

// diagnose runs the diagnostic program for the given system ID. Every
// output but the last is a test result that must be 0; the last output is
// the diagnostic code.
func diagnose(prog []int64, system int64) (int64, error) {
	var m intcode.Machine
	m.Load(prog)
	m.PushInput(system)
	defer func() { executed += m.Cycles() }()
	var outputs []int64
	for {
		if err := m.Run(); err != nil {
			return 0, err
		}
		if m.Terminated() {
			break
		}
		outputs = append(outputs, m.Output())
		if err := m.Resume(); err != nil {
			return 0, err
		}
	}
	if len(outputs) == 0 {
		return 0, errors.New("diagnostic program produced no output")
	}
	code := outputs[len(outputs)-1]
	for i, v := range outputs[:len(outputs)-1] {
		if v != 0 {
			return 0, fmt.Errorf("diagnostic test %d failed (output %d)", i, v)
		}
	}
	return code, nil
}
