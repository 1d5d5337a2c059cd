package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/warpstreamlabs/stationstats/internal/input"
	"github.com/warpstreamlabs/stationstats/internal/scan"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-workers", "3", "-load", "read", "-compare", "out.txt", "data.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.workers != 3 || cfg.load != input.Read || cfg.compare != "out.txt" || cfg.path != "data.txt" {
		t.Errorf("cfg = %+v", cfg)
	}

	cfg, err = parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.path != "measurements.txt" || cfg.load != input.Mmap || cfg.workers < 1 {
		t.Errorf("defaults = %+v", cfg)
	}

	for _, args := range [][]string{
		{"-workers", "0"},
		{"-load", "stream"},
		{"a.txt", "b.txt"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("parseFlags(%q) accepted", args)
		}
	}
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "measurements.txt", "A;-5.0\nB;5.0\nA;5.0\n")
	const want = "{A=-5.0/0.0/5.0, B=5.0/5.0/5.0}"

	for _, load := range []input.Mode{input.Mmap, input.Read} {
		var out bytes.Buffer
		ok, err := run(config{path: in, workers: 2, load: load}, &out)
		if err != nil || !ok {
			t.Fatalf("%s: ok=%v err=%v", load, ok, err)
		}
		if out.String() != want+"\n" {
			t.Errorf("%s: output %q, want %q", load, out.String(), want+"\n")
		}
	}

	t.Run("compare", func(t *testing.T) {
		same := writeFile(t, dir, "same.txt", want+"\n")
		ok, err := run(config{path: in, workers: 1, load: input.Read, compare: same}, &bytes.Buffer{})
		if err != nil || !ok {
			t.Errorf("matching result: ok=%v err=%v", ok, err)
		}

		other := writeFile(t, dir, "other.txt", "{A=-5.0/0.0/5.0, B=5.0/5.1/5.0}\n")
		ok, err = run(config{path: in, workers: 1, load: input.Read, compare: other}, &bytes.Buffer{})
		if err != nil || ok {
			t.Errorf("differing result: ok=%v err=%v", ok, err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.txt", "A;5\n")
		_, err := run(config{path: bad, workers: 1, load: input.Read}, &bytes.Buffer{})
		if !errors.Is(err, scan.ErrMalformed) {
			t.Errorf("err = %v, want ErrMalformed", err)
		}
	})
}
