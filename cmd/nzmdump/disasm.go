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

import (
	"encoding/binary"
	"fmt"
)

var regNames = []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "rpc", "rcond"}

// wireOpcodeTable maps a 5-bit wire code to its mnemonic. Code 12 is shared
// by the whole jump family and is resolved separately, by sub-code, through
// jumpSubcodeTable in decodeWord.
var wireOpcodeTable = map[uint32]string{
	0: "add", 1: "mul", 2: "sub", 3: "div", 4: "mod", 5: "neg",
	6: "shl", 7: "shr", 8: "and", 9: "or", 10: "xor", 11: "not",
	13: "int", 14: "push", 15: "pop", 16: "ret", 17: "call", 18: "mov",
	19: "rd", 20: "wr", 21: "cmp", 22: "clear", 23: "halt",
	24: "trace", 25: "dup", 26: "swap",
}

var jumpSubcodeTable = map[uint32]string{
	0: "jmp", 1: "je", 2: "jh", 3: "jl", 4: "jle", 5: "jhe",
}

func twoOperandOp(name string) bool {
	switch name {
	case "add", "mul", "sub", "div", "mod", "shl", "shr", "and", "or", "xor",
		"not", "cmp", "rd", "wr", "mov":
		return true
	}
	return false
}

func zeroOperandOp(name string) bool {
	switch name {
	case "halt", "swap", "dup", "clear", "trace", "neg", "ret":
		return true
	}
	return false
}

func oneOperandOp(name string) bool {
	switch name {
	case "int", "call", "push", "pop":
		return true
	}
	return false
}

func regName(idx uint32) string {
	if int(idx) < len(regNames) {
		return regNames[idx]
	}
	return fmt.Sprintf("r?%d", idx)
}

// DisassembledLine is one decoded instruction word, ready to print.
type DisassembledLine struct {
	Address  uint32
	HexBytes string
	Mnemonic string
}

// decodeWord unpacks a single 32-bit instruction word per the bit layout in
// the binary encoder (opcode bits 31-27; sub-field bits 26-24; immediate
// flag; payload). It makes no attempt to tell instruction words apart from
// string bytes -- the format carries no such marker, so every 4-byte stride
// from the header onward is decoded as if it were an instruction, the same
// best-effort assumption a flat disassembler with no symbol table always
// makes.
func decodeWord(w uint32) string {
	wire := w >> 27

	if wire == 12 {
		sub := (w >> 24) & 0x7
		name, ok := jumpSubcodeTable[sub]
		if !ok {
			name = fmt.Sprintf("j?%d", sub)
		}
		imm := (w>>23)&1 == 1
		payload := w & 0x7FFFFF
		if imm {
			return fmt.Sprintf("%s %d", name, payload)
		}
		return fmt.Sprintf("%s %s", name, regName(payload))
	}

	name, ok := wireOpcodeTable[wire]
	if !ok {
		return fmt.Sprintf("db $%08X", w)
	}

	switch {
	case zeroOperandOp(name):
		return name

	case oneOperandOp(name):
		imm := (w>>26)&1 == 1
		payload := w & 0x3FFFFFF
		if imm {
			return fmt.Sprintf("%s %d", name, payload)
		}
		return fmt.Sprintf("%s %s", name, regName(payload))

	case twoOperandOp(name):
		dst := (w >> 24) & 0x7
		imm := (w>>23)&1 == 1
		payload := w & 0x7FFFFF
		if imm {
			return fmt.Sprintf("%s %s, %d", name, regName(dst), payload)
		}
		return fmt.Sprintf("%s %s, %s", name, regName(dst), regName(payload))
	}

	return fmt.Sprintf("db $%08X", w)
}

// disassemble walks body (the image with its 4-byte header already stripped)
// four bytes at a time, producing one DisassembledLine per word.
func disassemble(body []byte) []DisassembledLine {
	var lines []DisassembledLine
	addr := uint32(4)

	for len(body) >= 4 {
		w := binary.BigEndian.Uint32(body[:4])
		lines = append(lines, DisassembledLine{
			Address:  addr,
			HexBytes: fmt.Sprintf("%02X %02X %02X %02X", body[0], body[1], body[2], body[3]),
			Mnemonic: decodeWord(w),
		})
		body = body[4:]
		addr += 4
	}

	if len(body) > 0 {
		hex := ""
		for _, b := range body {
			hex += fmt.Sprintf("%02X ", b)
		}
		lines = append(lines, DisassembledLine{
			Address:  addr,
			HexBytes: hex,
			Mnemonic: fmt.Sprintf("; %d trailing byte(s), shorter than a full word", len(body)),
		})
	}

	return lines
}
