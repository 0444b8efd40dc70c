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

package main

import "testing"

func TestDecodeWord(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		want string
	}{
		{"halt", 0xB8000000, "halt"},
		{"mov immediate", 0x91800005, "mov r1, 5"},
		{"mov register", 0x92000003, "mov r2, r3"},
		{"jmp immediate", 0x60800004, "jmp 4"},
		{"je immediate", 0x61800004, "je 4"},
		{"push immediate", 0x74000041, "push 65"},
		{"pop register", 0x78000000, "pop r0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if have := decodeWord(test.word); have != test.want {
				t.Fatalf("want %q, have %q", test.want, have)
			}
		})
	}
}

func TestDisassembleStride(t *testing.T) {
	body := []byte{
		0xB8, 0x00, 0x00, 0x00,
		0x00,
	}

	lines := disassemble(body)
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, have %d", len(lines))
	}
	if lines[0].Mnemonic != "halt" {
		t.Fatalf("want halt, have %q", lines[0].Mnemonic)
	}
	if lines[0].Address != 4 {
		t.Fatalf("want address 4, have %d", lines[0].Address)
	}
}
