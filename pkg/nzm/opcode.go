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

package nzm

// OpCode is one mnemonic. Every jump variant shares wire code 12 and is told
// apart only by its jump sub-code (see jumpSubcode).
type OpCode uint8

const (
	OpADD OpCode = iota
	OpMUL
	OpSUB
	OpDIV
	OpMOD
	OpNEG
	OpSHL
	OpSHR
	OpAND
	OpOR
	OpXOR
	OpNOT
	OpJMP
	OpJE
	OpJH
	OpJL
	OpJLE
	OpJHE
	OpINT
	OpPUSH
	OpPOP
	OpRET
	OpCALL
	OpMOV
	OpREAD
	OpWRITE
	OpCMP
	OpCLEAR
	OpHALT
	OpTRACE
	OpDUP
	OpSWAP
)

var opcodeNames = map[string]OpCode{
	"add": OpADD, "mul": OpMUL, "sub": OpSUB, "div": OpDIV, "mod": OpMOD,
	"neg": OpNEG, "shl": OpSHL, "shr": OpSHR, "and": OpAND, "or": OpOR,
	"xor": OpXOR, "not": OpNOT,
	"jmp": OpJMP, "je": OpJE, "jh": OpJH, "jl": OpJL, "jle": OpJLE, "jhe": OpJHE,
	"int": OpINT, "push": OpPUSH, "pop": OpPOP, "ret": OpRET, "call": OpCALL,
	"mov": OpMOV, "rd": OpREAD, "wr": OpWRITE, "cmp": OpCMP, "clear": OpCLEAR,
	"halt": OpHALT, "trace": OpTRACE, "dup": OpDUP, "swap": OpSWAP,
}

var opcodeText = func() map[OpCode]string {
	m := make(map[OpCode]string, len(opcodeNames))
	for name, op := range opcodeNames {
		m[op] = name
	}
	return m
}()

func (op OpCode) String() string {
	if name, ok := opcodeText[op]; ok {
		return name
	}
	return "<invalid opcode>"
}

// ParseOpCode looks up an opcode by its exact, case-sensitive mnemonic.
func ParseOpCode(s string) (OpCode, bool) {
	op, ok := opcodeNames[s]
	return op, ok
}

// wireCode is the 5-bit value emitted in bits 31..27 of the instruction
// word. All jump variants collapse to 12.
func (op OpCode) wireCode() uint32 {
	switch op {
	case OpJE, OpJH, OpJL, OpJLE, OpJHE:
		return 12
	}
	if op <= OpJMP {
		return uint32(op)
	}
	// Everything after the jump family shifts down by 5 to account for the
	// 5 collapsed jump mnemonics sharing a single wire value.
	return uint32(op) - 5
}

// jumpSubcode reports the 3-bit jump sub-code and whether op is a jump at
// all.
func (op OpCode) jumpSubcode() (uint32, bool) {
	switch op {
	case OpJMP:
		return 0, true
	case OpJE:
		return 1, true
	case OpJH:
		return 2, true
	case OpJL:
		return 3, true
	case OpJLE:
		return 4, true
	case OpJHE:
		return 5, true
	}
	return 0, false
}

func (op OpCode) isTwoOperandGroup() bool {
	switch op {
	case OpADD, OpMUL, OpSUB, OpDIV, OpMOD, OpSHL, OpSHR, OpAND, OpOR, OpXOR,
		OpNOT, OpCMP, OpREAD, OpWRITE, OpMOV:
		return true
	}
	return false
}

func (op OpCode) isZeroOperandGroup() bool {
	switch op {
	case OpHALT, OpSWAP, OpDUP, OpCLEAR, OpTRACE, OpNEG, OpRET:
		return true
	}
	return false
}

func (op OpCode) isRegOrImmGroup() bool {
	switch op {
	case OpINT, OpJMP, OpJE, OpJH, OpJL, OpJLE, OpJHE, OpCALL, OpPUSH:
		return true
	}
	return false
}

// checkCompatibility enforces the operand-shape rule for op against the
// already-gathered operand words (0, 1, or 2 of them).
func (op OpCode) checkCompatibility(operands []Word) ErrorKind {
	switch {
	case op.isTwoOperandGroup():
		if len(operands) != 2 || !operands[0].isRegister() || !operands[1].isRegOrImm() {
			return &ExpectedRegImmOrReg{Op: op}
		}
	case op.isZeroOperandGroup():
		if len(operands) != 0 {
			return &ExpectedNothing{Op: op}
		}
	case op.isRegOrImmGroup():
		if len(operands) != 1 || !operands[0].isRegOrImm() {
			return &ExpectedRegOrImm{Op: op}
		}
	case op == OpPOP:
		if len(operands) != 1 || !operands[0].isRegister() {
			return &ExpectedReg{Op: op}
		}
	}
	return nil
}
