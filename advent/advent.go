package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/puzzles/intcode"
	"github.com/dustin/go-humanize"
	"github.com/felixge/fgprof"
)

var (
	conf     config
	executed int64 // intcode instructions run by the current solution
)

func main() {
	log.SetFlags(0)
	var (
		configFile = flag.String("config", "", "INI config file (default "+defaultConfigFile()+")")
		verbose    = flag.Bool("v", false, "Print input and timing details to stderr")
		fgprofFile = flag.String("fgprof", "", "Write an fgprof profile of the solution to this file")
	)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	var err error
	if *configFile == "" {
		conf, err = loadConfig(defaultConfigFile(), true)
	} else {
		conf, err = loadConfig(*configFile, false)
	}
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		conf.verbose = true
	}

	name := flag.Arg(0)
	fn, ok := solutions[name]
	if !ok {
		log.Fatalf("unknown solution %q", name)
	}

	var stopProfile func() error
	if *fgprofFile != "" {
		f, err := os.Create(*fgprofFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		stopProfile = fgprof.Start(f, fgprof.FormatPprof)
	}
	start := time.Now()
	fn(flag.Args()[1:])
	elapsed := time.Since(start)
	if stopProfile != nil {
		if err := stopProfile(); err != nil {
			log.Fatalf("error writing profile: %s", err)
		}
	}
	if executed > 0 {
		vlogf("%s: %s (%s intcode instructions)", name, elapsed.Round(time.Microsecond), humanize.Comma(executed))
	} else {
		vlogf("%s: %s", name, elapsed.Round(time.Microsecond))
	}
}

func usage() {
	var names []string
	for name := range solutions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return nameLess(names[i], names[j]) })
	fmt.Fprintf(os.Stderr, "usage: %s [flags] [solution] [input]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "where solution is one of:")
	for _, name := range names {
		fmt.Fprintln(os.Stderr, name)
	}
	fmt.Fprintln(os.Stderr, "and the flags are:")
	flag.PrintDefaults()
}

var solutions = make(map[string]func([]string))

func register(name string, fn func([]string)) {
	if _, ok := solutions[name]; ok {
		panic(fmt.Sprintf("duplicate solutions registered for %q", name))
	}
	solutions[name] = fn
}

func nameLess(name0, name1 string) bool {
	n0, s0 := splitName(name0)
	n1, s1 := splitName(name1)
	if n0 < n1 {
		return true
	}
	if n0 > n1 {
		return false
	}
	return s0 < s1
}

func splitName(name string) (int, string) {
	i := 0
	for ; i < len(name); i++ {
		c := name[i]
		if c < '0' || c > '9' {
			break
		}
	}
	n, err := strconv.Atoi(name[:i])
	if err != nil {
		panic(err)
	}
	return n, name[i:]
}

func vlogf(format string, args ...interface{}) {
	if conf.verbose {
		log.Printf(format, args...)
	}
}

// openInput opens the puzzle input for the given day: the file named by
// the first argument, if any; otherwise dayN.txt in the configured input
// directory; otherwise stdin.
func openInput(day int, args []string) (io.ReadCloser, string, error) {
	var name string
	switch {
	case len(args) > 0 && args[0] != "-":
		name = args[0]
	case len(args) == 0 && conf.inputDir != "":
		name = filepath.Join(conf.inputDir, fmt.Sprintf("day%d.txt", day))
	default:
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, "", err
	}
	return f, name, nil
}

// readProgram reads the intcode program for day, exiting on error.
func readProgram(day int, args []string) []int64 {
	r, name, err := openInput(day, args)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		log.Fatal(err)
	}
	prog, err := intcode.Parse(string(b))
	if err != nil {
		log.Fatalf("error parsing program from %s: %s", name, err)
	}
	vlogf("read %s from %s (%s values)",
		humanize.Bytes(uint64(len(b))), name, humanize.Comma(int64(len(prog))))
	return prog
}
