// Command stationstats prints {station=min/mean/max, ...} for a file of
// `station;value` lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/pkg/profile"

	"github.com/warpstreamlabs/stationstats"
	"github.com/warpstreamlabs/stationstats/internal/input"
	"github.com/warpstreamlabs/stationstats/internal/report"
)

type config struct {
	path       string
	workers    int
	load       input.Mode
	compare    string
	profile    string
	profileDir string
	noGC       bool
	verbose    bool
}

func parseFlags(args []string) (config, error) {
	var (
		cfg  config
		load string
		fs   = flag.NewFlagSet("stationstats", flag.ContinueOnError)
	)
	fs.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of parallel workers")
	fs.StringVar(&load, "load", string(input.Mmap), "how to load the input: mmap or read")
	fs.StringVar(&cfg.compare, "compare", "", "expected output file to diff the result against")
	fs.StringVar(&cfg.profile, "profile", "", "write a cpu, mem or trace profile")
	fs.StringVar(&cfg.profileDir, "profile-dir", ".", "directory for -profile output")
	fs.BoolVar(&cfg.noGC, "nogc", false, "disable the garbage collector")
	fs.BoolVar(&cfg.verbose, "v", false, "log timings to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: stationstats [flags] [measurements.txt]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.path = "measurements.txt"
	switch fs.NArg() {
	case 0:
	case 1:
		cfg.path = fs.Arg(0)
	default:
		return cfg, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	cfg.load = input.Mode(load)
	if cfg.load != input.Mmap && cfg.load != input.Read {
		return cfg, fmt.Errorf("-load: unknown mode %q", load)
	}
	if cfg.workers < 1 {
		return cfg, fmt.Errorf("-workers must be positive, got %d", cfg.workers)
	}

	return cfg, nil
}

func startProfile(kind, dir string) (interface{ Stop() }, error) {
	var mode func(*profile.Profile)
	switch kind {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil, fmt.Errorf("-profile: unknown profile %q", kind)
	}
	return profile.Start(mode, profile.ProfilePath(dir), profile.NoShutdownHook), nil
}

func compareResult(result string, compareToPath string) (bool, error) {
	expected, err := os.ReadFile(compareToPath)
	if err != nil {
		return false, fmt.Errorf("read expected result: %w", err)
	}

	d := report.Diff(string(expected), result)
	if d == "" {
		return true, nil
	}
	fmt.Fprintln(os.Stderr, d)
	return false, nil
}

func run(cfg config, stdout io.Writer) (bool, error) {
	if cfg.noGC {
		debug.SetMemoryLimit(math.MaxInt64)
		debug.SetGCPercent(-1)
	}

	if cfg.profile != "" {
		p, err := startProfile(cfg.profile, cfg.profileDir)
		if err != nil {
			return false, err
		}
		defer p.Stop()
	}

	start := time.Now()
	buf, err := input.Open(cfg.path, cfg.load)
	if err != nil {
		return false, err
	}
	defer buf.Close()
	loaded := time.Now()

	result, err := stationstats.Run(context.Background(), buf.Bytes(), cfg.workers)
	if err != nil {
		return false, fmt.Errorf("%s: %w", cfg.path, err)
	}
	done := time.Now()

	if cfg.verbose {
		log.Printf("%s: %d bytes, %s, %d workers", cfg.path, len(buf.Bytes()), cfg.load, cfg.workers)
		log.Printf("load %v, compute %v, total %v", loaded.Sub(start), done.Sub(loaded), done.Sub(start))
	}

	if _, err := fmt.Fprintln(stdout, result); err != nil {
		return false, err
	}

	if cfg.compare != "" {
		return compareResult(result, cfg.compare)
	}
	return true, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("stationstats: ")

	cfg, err := parseFlags(os.Args[1:])
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		log.Print(err)
		os.Exit(2)
	}

	ok, err := run(cfg, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		log.Print("result differs from ", cfg.compare)
		os.Exit(1)
	}
}
