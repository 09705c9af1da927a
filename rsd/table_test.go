package rsd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/guregu/null.v3"
)

func TestWriteTable(t *testing.T) {
	records := []Record{
		{Metabolite: "met1", RSD: null.FloatFrom(12.5), Method: "Raw"},
		{Metabolite: "met2", RSD: null.NewFloat(0, false), Method: "Raw"},
	}

	path := filepath.Join(t.TempDir(), "rsd.csv")
	if err := WriteTable(path, records); err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Metabolite,RSD,Method" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "met1,12.5,Raw" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	// A missing RSD serializes as an empty cell, not a zero.
	if lines[2] != "met2,,Raw" {
		t.Fatalf("unexpected row %q", lines[2])
	}
}
