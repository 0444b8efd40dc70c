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

// resolveAddresses is the pure second pass of §4.G: it walks the finalized
// lines in order, assigning each declared label the running byte address it
// precedes. labels already holds line indices from pass 1; this overwrites
// every entry with its real byte address, the dual-meaning map documented
// in SPEC_FULL.md §9.
func resolveAddresses(lines []Line, labels map[string]uint32) {
	var addr uint32
	for _, line := range lines {
		for _, name := range line.labels {
			labels[name] = addr
		}
		addr += line.byteSize()
	}
}
