package intcode

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	for _, tt := range []struct {
		s    string
		want []int64
	}{
		{"99", []int64{99}},
		{"1,0,0,0,99\n", []int64{1, 0, 0, 0, 99}},
		{" 1002, 4,3 ,4,33 ", []int64{1002, 4, 3, 4, 33}},
		{"3,9,8,9,10,9,4,9,99,-1,8", []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}},
		{"+5,-9223372036854775808", []int64{5, -9223372036854775808}},
	} {
		got, err := Parse(tt.s)
		if err != nil {
			t.Errorf("Parse(%q): %s", tt.s, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q): got %v; want %v", tt.s, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"\n",
		"1,,2",
		"1,2,",
		"1;2",
		"1 2",
		"0x10",
		"99999999999999999999",
	} {
		if got, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): got %v; want error", s, got)
		}
	}
}

func TestReadProgram(t *testing.T) {
	got, err := ReadProgram(strings.NewReader("1,9,10,3,2,3,11,0,99,30,40,50\n"))
	if err != nil {
		t.Fatal(err)
	}
	var m Machine
	m.Load(got)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	v, err := m.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3500 {
		t.Errorf("got mem[0] = %d; want 3500", v)
	}
}
