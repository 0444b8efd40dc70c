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

// Register is the 4-bit index space of the ten named registers. r0..r7 are
// the general-purpose file; rpc and rcond are special and only fit in the
// wider operand payload fields of the instruction word (see encode.go).
type Register uint8

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	RPC
	RCOND
)

var registerNames = [...]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "rpc", "rcond",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "<invalid register>"
}

// ParseRegister looks up a register by its exact, case-sensitive name.
func ParseRegister(s string) (Register, bool) {
	for i, name := range registerNames {
		if name == s {
			return Register(i), true
		}
	}
	return 0, false
}
