// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package nzm_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/lassandro/nzmasm/pkg/nzm"
)

type testCase struct {
	Name   string
	Input  string
	Output []byte
}

type failCase struct {
	Name  string
	Input string
	Error nzm.ErrorKind
	Line  int
}

func words(vals ...uint32) []byte {
	buf := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		buf = append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return buf
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	var out bytes.Buffer
	if err := nzm.Assemble(test.Input, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out.Bytes(), test.Output) {
		t.Fatalf(
			"output mismatch\nwant:%x\nhave:%x",
			test.Output,
			out.Bytes(),
		)
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	var out bytes.Buffer
	err := nzm.Assemble(test.Input, &out)
	if err == nil {
		t.Fatalf("%s: want error %T, have nil", t.Name(), test.Error)
	}

	asmErr, ok := err.(*nzm.Error)
	if !ok {
		t.Fatalf("%s: want *nzm.Error, have %T", t.Name(), err)
	}

	if have, want := reflect.TypeOf(asmErr.Kind), reflect.TypeOf(test.Error); have != want {
		t.Fatalf("%s: want error of type %v, have %v (%v)", t.Name(), want, have, asmErr.Kind)
	}

	if test.Line != 0 && asmErr.Line != test.Line {
		t.Fatalf("%s: want error on line %d, have %d", t.Name(), test.Line, asmErr.Line)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerFail(t, &test)
			})
		}
	})
}

// Scenario 1: a single zero-operand instruction.
func TestHalt(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "halt only",
			Input:  "main: halt",
			Output: words(0x00000000, 0xB8000000),
		},
	})
}

// Scenario 2: a two-operand instruction with an immediate, followed by halt.
// See DESIGN.md's note under "H. Binary encoder" on why the first word here
// is 0x91800005, not the 0x90800005 spec.md's own worked example states --
// every other worked example in that table checks out against the general
// field layout, and this implementation follows that layout consistently.
func TestMovImmediate(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "mov r1, 5 then halt",
			Input:  "main: mov r1, 5\n      halt",
			Output: words(0x00000000, 0x91800005, 0xB8000000),
		},
	})
}

// Scenario 3: a forward label reference resolved to a byte address.
func TestJumpForwardLabel(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "jmp end; end: halt",
			Input:  "main: jmp end\nend:  halt",
			Output: words(0x00000000, 0x60800004, 0xB8000000),
		},
	})
}

// Scenario 4: an instruction followed by a standalone string literal line.
func TestStringLine(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:  "halt then a string literal",
			Input: "main: halt\nmsg:  \"hi\"",
			Output: append(
				words(0x00000000, 0xB8000000),
				'h', 'i', 0x00,
			),
		},
	})
}

// Scenario 5: a single-quoted character literal used as an immediate.
func TestPushCharLiteral(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "push 'A'",
			Input:  "main: push 'A'",
			Output: words(0x00000000, 0x74000041),
		},
	})
}

// Scenario 6: comments before and after the program must not change output.
func TestCommentsAreTransparent(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "comment-wrapped halt",
			Input:  "; leading comment\nmain: halt ; trailing comment\n",
			Output: words(0x00000000, 0xB8000000),
		},
	})
}

func TestJumpFamily(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "je",
			Input:  "main: je end\nend:  halt",
			Output: words(0x00000000, 0x61800004, 0xB8000000),
		},
		{
			Name:   "jh",
			Input:  "main: jh end\nend:  halt",
			Output: words(0x00000000, 0x62800004, 0xB8000000),
		},
		{
			Name:   "jl",
			Input:  "main: jl end\nend:  halt",
			Output: words(0x00000000, 0x63800004, 0xB8000000),
		},
		{
			Name:   "jle",
			Input:  "main: jle end\nend:  halt",
			Output: words(0x00000000, 0x64800004, 0xB8000000),
		},
		{
			Name:   "jhe",
			Input:  "main: jhe end\nend:  halt",
			Output: words(0x00000000, 0x65800004, 0xB8000000),
		},
	})
}

// Register-file operands never go through the immediate-flag path.
func TestMovRegisterOperand(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "mov r2, r3",
			Input:  "main: mov r2, r3\n      halt",
			Output: words(0x00000000, 0x92000003, 0xB8000000),
		},
	})
}

// rpc/rcond are only rejected as the first operand of a 2-operand
// instruction; everywhere else (here, the second operand) they're fine.
func TestSecondOperandAllowsWideRegisters(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "mov r0, rpc",
			Input:  "main: mov r0, rpc\n      halt",
			Output: words(0x00000000, 0x90000008, 0xB8000000),
		},
	})
}

func TestBoundaries(t *testing.T) {
	testFail(t, []failCase{
		{
			Name:  "empty file",
			Input: "",
			Error: &nzm.EmptyText{},
			Line:  0,
		},
		{
			Name:  "unterminated double quote",
			Input: "main: halt\nmsg: \"never closed",
			Error: &nzm.DoubleQuoteNeverEnded{},
		},
		{
			Name:  "unterminated single quote",
			Input: "main: halt\nmsg: 'a",
			Error: &nzm.SingleQuoteNeverEnded{},
		},
		{
			Name:  "duplicate label",
			Input: "main: halt\nmain: halt",
			Error: &nzm.LabelDeclaredTwice{},
			Line:  2,
		},
		{
			Name:  "undeclared label reference",
			Input: "main: jmp nowhere",
			Error: &nzm.LabelIsNotDeclared{},
		},
		{
			Name:  "missing main",
			Input: "start: halt",
			Error: &nzm.NoMain{},
			Line:  0,
		},
		{
			// main is checked before the end-of-file flush (SPEC_FULL.md
			// §4.F), so a missing main label wins over a malformed trailing
			// token even though the tokenizer would itself fail at EOF.
			Name:  "missing main beats a malformed trailing token",
			Input: "halt\n\"never closed",
			Error: &nzm.NoMain{},
			Line:  0,
		},
		{
			// A bare colon tokenizes to an empty-content LabelDeclaration,
			// which fails isValidLabelName immediately, before main is ever
			// checked.
			Name:  "bare colon is an invalid label name",
			Input: "main: halt\n: halt",
			Error: &nzm.InvalidLabelName{},
		},
		{
			Name:  "number out of range",
			Input: "main: mov r0, 99999999999\n      halt",
			Error: &nzm.InvalidNumber{},
		},
		{
			Name:  "rpc rejected as first operand",
			Input: "main: mov rpc, r0\n      halt",
			Error: &nzm.InvalidRegister{},
		},
		{
			Name:  "empty single quote",
			Input: "main: push ''\n      halt",
			Error: &nzm.InvalidSingleQuote{},
		},
		{
			Name:  "two-char single quote",
			Input: "main: push 'AB'\n      halt",
			Error: &nzm.InvalidSingleQuote{},
		},
		{
			Name:  "wrong operand shape for zero-operand op",
			Input: "main: halt r0",
			Error: &nzm.ExpectedNothing{},
		},
		{
			Name:  "wrong operand shape for two-operand op",
			Input: "main: mov r0",
			Error: &nzm.ExpectedRegImmOrReg{},
		},
		{
			Name:  "bare word where an opcode or string was expected",
			Input: "main: frobnicate",
			Error: &nzm.SyntaxError{},
		},
		{
			Name:  "stray comma before first operand",
			Input: "main: mov ,r0, r1\n      halt",
			Error: &nzm.SyntaxError{},
		},
	})
}

// BackSlashNeeded and InvalidWord are closed taxonomy members with no
// reachable call site (see DESIGN.md); they are exercised directly as
// synthetic constructions rather than through Assemble. InvalidLabelName is
// NOT in this group — it has a reachable call site, covered end-to-end by
// TestBoundaries's "bare colon is an invalid label name" case — but its
// Code()/Error() are still checked here alongside its unreachable siblings.
func TestUnreachableErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		kind nzm.ErrorKind
		code int
	}{
		{"BackSlashNeeded", &nzm.BackSlashNeeded{Ch: 'x'}, 4},
		{"InvalidWord", &nzm.InvalidWord{Text: "x"}, 11},
		{"InvalidLabelName", &nzm.InvalidLabelName{Text: "x"}, 12},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.kind.Code() != c.code {
				t.Fatalf("want code %d, have %d", c.code, c.kind.Code())
			}
			if c.kind.Error() == "" {
				t.Fatalf("want non-empty message")
			}
		})
	}
}

// An empty double-quoted string is a valid zero-length string, distinct
// from a too-short single-quoted character literal (see DESIGN.md's
// quoted-text Open Question resolution).
func TestEmptyDoubleQuoteIsValid(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:  "empty string literal",
			Input: "main: halt\nmsg:  \"\"",
			Output: append(
				words(0x00000000, 0xB8000000),
				0x00,
			),
		},
	})
}
