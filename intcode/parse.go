package intcode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse parses a program written as comma-separated integers, such as
// "1,9,10,3,2,3,11,0,99,30,40,50". Whitespace around the numbers is
// ignored.
func Parse(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty program")
	}
	parts := strings.Split(s, ",")
	prog := make([]int64, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty value at index %d", i)
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value at index %d: %s", i, err)
		}
		prog[i] = n
	}
	return prog, nil
}

// ReadProgram reads all of r and parses it with Parse.
func ReadProgram(r io.Reader) ([]int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(b))
}
