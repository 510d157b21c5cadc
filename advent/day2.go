package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/cespare/puzzles/intcode"
)

func init() {
	register("2a", day2a)
	register("2b", day2b)
}

func day2a(args []string) {
	prog := readProgram(2, args)
	var m intcode.Machine
	v, err := runNounVerb(&m, prog, 12, 2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
}

func day2b(args []string) {
	target := int64(19690720)
	if len(args) > 1 {
		var err error
		target, err = strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			log.Fatalf("bad target: %s", err)
		}
	}
	prog := readProgram(2, args)
	noun, verb, err := findNounVerb(prog, target)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(100*noun + verb)
}

// runNounVerb runs prog with mem[1] = noun and mem[2] = verb and returns
// the final value of mem[0].
func runNounVerb(m *intcode.Machine, prog []int64, noun, verb int64) (int64, error) {
	m.Load(prog)
	if err := m.Write(1, noun); err != nil {
		return 0, err
	}
	if err := m.Write(2, verb); err != nil {
		return 0, err
	}
	err := m.Run()
	executed += m.Cycles()
	if err != nil {
		return 0, err
	}
	if !m.Terminated() {
		return 0, fmt.Errorf("program produced output %d", m.Output())
	}
	return m.Read(0)
}

// findNounVerb searches nouns and verbs in [0, 99] for a pair that makes
// the program leave target in mem[0]. Pairs that crash the program are
// skipped.
func findNounVerb(prog []int64, target int64) (int64, int64, error) {
	if len(prog) < 3 {
		return 0, 0, fmt.Errorf("program has only %d values", len(prog))
	}
	var m intcode.Machine
	for noun := int64(0); noun < 100; noun++ {
		for verb := int64(0); verb < 100; verb++ {
			v, err := runNounVerb(&m, prog, noun, verb)
			if err != nil {
				continue
			}
			if v == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("no noun and verb produce %d", target)
}
