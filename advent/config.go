package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vaughan0/go-ini"
)

// config holds the persistent settings from the INI config file:
//
//	[advent]
//	verbose = true
//
//	[inputs]
//	dir = ~/advent/2019
type config struct {
	verbose  bool
	inputDir string
}

func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "advent.ini"
	}
	return filepath.Join(dir, "advent", "advent.ini")
}

// loadConfig reads the config file name. If missingOK is set, a missing
// file yields the zero config.
func loadConfig(name string, missingOK bool) (config, error) {
	var c config
	file, err := ini.LoadFile(name)
	if err != nil {
		if missingOK && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("error loading config (%s): %s", name, err)
	}
	if s, ok := file.Get("advent", "verbose"); ok {
		c.verbose, err = strconv.ParseBool(s)
		if err != nil {
			return c, fmt.Errorf("config %s: bad value for advent.verbose: %q", name, s)
		}
	}
	if dir, ok := file.Get("inputs", "dir"); ok && dir != "" {
		c.inputDir, err = expandDir(dir, filepath.Dir(name))
		if err != nil {
			return c, fmt.Errorf("config %s: %s", name, err)
		}
	}
	return c, nil
}

// expandDir resolves ~ and makes dir absolute relative to base.
func expandDir(dir, base string) (string, error) {
	if dir == "~" || len(dir) > 1 && dir[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, dir[1:]), nil
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	return filepath.Join(base, dir), nil
}
