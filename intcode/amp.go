package intcode

import (
	"errors"
	"fmt"
)

// Chain runs one amplifier per phase setting, each a fresh copy of prog.
// Amplifier i receives its phase and then the signal from amplifier i-1
// (0 for the first) and runs until its first output, which becomes the
// next signal. Chain returns the last amplifier's output.
func Chain(prog, phases []int64) (int64, error) {
	var m Machine
	var signal int64
	for i, phase := range phases {
		m.Load(prog)
		m.PushInput(phase, signal)
		if err := m.Run(); err != nil {
			return 0, fmt.Errorf("amplifier %d: %w", i, err)
		}
		signal = m.Output()
	}
	return signal, nil
}

// Feedback runs one amplifier per phase setting in a loop: the output of
// each amplifier is the input of the next and the last amplifier feeds the
// first. The first signal is 0.
//
// The amplifiers take turns. On its turn an amplifier receives the current
// signal, runs until it produces an output or terminates, and passes on its
// output. Turns continue until every amplifier has terminated. Feedback
// returns the last amplifier's final output.
func Feedback(prog, phases []int64) (int64, error) {
	if len(phases) == 0 {
		return 0, errors.New("no amplifiers")
	}
	ms := make([]Machine, len(phases))
	for i := range ms {
		ms[i].Load(prog)
		ms[i].PushInput(phases[i])
	}
	var signal int64
	for !allTerminated(ms) {
		for i := range ms {
			m := &ms[i]
			m.PushInput(signal)
			for m.State() == Running {
				if err := m.Step(); err != nil {
					return 0, fmt.Errorf("amplifier %d: %w", i, err)
				}
			}
			signal = m.Output()
			if m.Halted() {
				if err := m.Resume(); err != nil {
					return 0, fmt.Errorf("amplifier %d: %w", i, err)
				}
			}
		}
	}
	return ms[len(ms)-1].Output(), nil
}

func allTerminated(ms []Machine) bool {
	for i := range ms {
		if !ms[i].Terminated() {
			return false
		}
	}
	return true
}

// MaxSignal tries every ordering of phases with run (Chain or Feedback)
// and returns the largest signal along with the ordering that produced it.
func MaxSignal(prog, phases []int64, run func(prog, phases []int64) (int64, error)) (best int64, order []int64, err error) {
	first := true
	Permutations(phases, func(p []int64) bool {
		signal, err1 := run(prog, p)
		if err1 != nil {
			err = fmt.Errorf("phases %v: %w", p, err1)
			return false
		}
		if first || signal > best {
			best = signal
			order = append(order[:0], p...)
			first = false
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	return best, order, nil
}

// Permutations calls fn with every permutation of xs, stopping early if fn
// returns false. The slice passed to fn is reused between calls; xs itself
// is not modified.
func Permutations(xs []int64, fn func([]int64) bool) {
	p := append([]int64(nil), xs...)
	if !fn(p) {
		return
	}
	// Heap's algorithm, iterative form.
	c := make([]int, len(p))
	for i := 1; i < len(p); {
		if c[i] < i {
			if i%2 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[c[i]], p[i] = p[i], p[c[i]]
			}
			if !fn(p) {
				return
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
}
