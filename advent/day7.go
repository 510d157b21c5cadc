package main

import (
	"fmt"
	"log"

	"github.com/cespare/puzzles/intcode"
)

func init() {
	register("7a", day7a)
	register("7b", day7b)
}

func day7a(args []string) {
	day7(args, []int64{0, 1, 2, 3, 4}, intcode.Chain)
}

func day7b(args []string) {
	day7(args, []int64{5, 6, 7, 8, 9}, intcode.Feedback)
}

func day7(args []string, phases []int64, run func(prog, phases []int64) (int64, error)) {
	prog := readProgram(7, args)
	best, order, err := intcode.MaxSignal(prog, phases, run)
	if err != nil {
		log.Fatal(err)
	}
	vlogf("best phase settings: %v", order)
	fmt.Println(best)
}
