//go:build !js

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tani1964/compiler-api/pkg/compiler"
)

func TestRunExpression(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-e", "a=b+c"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{
		"Tokens (5)",
		"Assignment(left=a, right=BinaryExpr(+, b, c))",
		"MOV temp0, b",
		"100010 a, temp0",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-json", "-e", "x=1"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	var got struct {
		MachineCode string `json:"machine_code"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.MachineCode != "100010 x, 1" {
		t.Errorf("machine_code = %q", got.MachineCode)
	}
}

func TestRunInvalidSyntax(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-e", "a+b"}, &out)
	if !errors.Is(err, compiler.ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax, got %v", err)
	}
	if !strings.Contains(out.String(), compiler.InvalidSyntaxAST) {
		t.Errorf("output missing invalid syntax marker:\n%s", out.String())
	}
}

func TestRunFileInAndOut(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "stmt.txt")
	outFile := filepath.Join(dir, "stmt.mc")
	if err := os.WriteFile(in, []byte("a=b*c\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"-in", in, "-out", outFile}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	want := "100010 temp0, b\n0000111110101111 temp0, c\n100010 a, temp0\n"
	if string(data) != want {
		t.Errorf("machine code file = %q; want %q", data, want)
	}
}

func TestRunBaseOps(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-e", "a=b**c"}, &out); err != nil {
		t.Fatalf("extended operators: %v", err)
	}
	out.Reset()
	if err := run([]string{"-base-ops", "-e", "a=b**c"}, &out); !errors.Is(err, compiler.ErrInvalidSyntax) {
		t.Errorf("-base-ops: expected ErrInvalidSyntax, got %v", err)
	}
}

func TestRunArgumentErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"-e", "a=b", "-in", "x.txt"},
		{"-in", filepath.Join(t.TempDir(), "missing.txt")},
		{"-nope"},
	}
	for _, args := range tests {
		if err := run(args, &bytes.Buffer{}); err == nil {
			t.Errorf("run(%q) succeeded; want error", args)
		}
	}
}
