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

import (
	"encoding/binary"
	"io"
)

// truncate keeps the low width bits of v.
func truncate(v uint32, width uint) uint32 {
	return v & (uint32(1)<<width - 1)
}

func immediateBit(isImmediate bool) uint32 {
	if isImmediate {
		return 1
	}
	return 0
}

// resolveOperand turns a register/number/label operand word into its
// immediate flag and payload, truncated to the field width it will occupy.
// Label lookups are guaranteed to succeed: the driver's finalization step
// rejects unresolved references before encoding ever runs.
func resolveOperand(w Word, labels map[string]uint32, width uint) (bool, uint32) {
	switch w.Content.Kind {
	case contentRegister:
		return false, uint32(w.Content.Reg)
	case contentNumber:
		return true, truncate(uint32(w.Content.Num), width)
	case contentLabel:
		return true, truncate(labels[w.Content.Name], width)
	}
	panic("unreachable operand kind")
}

// narrowRegisterIndex enforces the Open Question resolution from §4.H /
// §9: the first-operand register field of a 2-operand instruction is only
// 3 bits wide, so rpc/rcond (indices 8/9) cannot appear there.
func narrowRegisterIndex(w Word) (uint32, ErrorKind) {
	idx := uint32(w.Content.Reg)
	if idx > 7 {
		return 0, &InvalidRegister{Text: w.Content.Reg.String()}
	}
	return idx, nil
}

// encodeInstruction packs op and its operands into the 32-bit instruction
// word described by §4.H.
func encodeInstruction(op OpCode, operands []Word, labels map[string]uint32) (uint32, ErrorKind) {
	code := op.wireCode()

	if subcode, isJump := op.jumpSubcode(); isJump {
		isImm, payload := resolveOperand(operands[0], labels, 23)
		return (code << 27) | (subcode << 24) | (immediateBit(isImm) << 23) | payload, nil
	}

	switch len(operands) {
	case 0:
		return code << 27, nil
	case 1:
		isImm, payload := resolveOperand(operands[0], labels, 26)
		return (code << 27) | (immediateBit(isImm) << 26) | payload, nil
	case 2:
		regIdx, err := narrowRegisterIndex(operands[0])
		if err != nil {
			return 0, err
		}
		isImm, payload := resolveOperand(operands[1], labels, 23)
		return (code << 27) | (regIdx << 24) | (immediateBit(isImm) << 23) | payload, nil
	}
	panic("unreachable operand count")
}

// encode is the binary emitter of §4.H: a 4-byte big-endian header holding
// main's address, followed by each line's bytes in order.
func encode(lines []Line, labels map[string]uint32, sink io.Writer) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], labels["main"])
	if _, err := sink.Write(header[:]); err != nil {
		return err
	}

	for _, line := range lines {
		switch line.kind {
		case lineString:
			if _, err := sink.Write(line.str); err != nil {
				return err
			}
		case lineInstruction:
			word, errKind := encodeInstruction(line.op, line.operands, labels)
			if errKind != nil {
				return &Error{Line: line.number, Kind: errKind}
			}
			var buf [4]byte
			binary.BigEndian.PutUint32(buf[:], word)
			if _, err := sink.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return nil
}
