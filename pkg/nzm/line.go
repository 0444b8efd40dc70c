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

type lineKind int

const (
	lineEmpty lineKind = iota
	lineString
	lineInstruction
)

// Line is a validated sequence of words: zero or more label declarations
// followed by either a standalone string, an opcode with its operands, or
// nothing at all.
type Line struct {
	number   int
	labels   []string
	kind     lineKind
	str      []byte
	op       OpCode
	operands []Word
}

// byteSize is the number of bytes this line contributes to the assembled
// stream, per the address resolver's accounting (§4.G).
func (l *Line) byteSize() uint32 {
	switch l.kind {
	case lineString:
		return uint32(len(l.str))
	case lineInstruction:
		return 4
	default:
		return 0
	}
}

// collectGapSeps returns the separators skipped after the real token at
// words[idx-1]: that token's own terminator, then the separators of the
// Empty words scanned forward from idx, together with the index of the first
// non-Empty word (or len(words) if none remains). idx must be at least 1.
func collectGapSeps(words []Word, idx int) ([]wordSeparator, int) {
	seps := []wordSeparator{words[idx-1].Sep}
	for idx < len(words) && words[idx].Content.Kind == contentEmpty {
		seps = append(seps, words[idx].Sep)
		idx++
	}
	return seps, idx
}

// checkGap is the separator-grammar checker of §4.E: ignoring space and
// end-of-line separators, and the quote and colon separators that delimit a
// neighbouring literal or label declaration, every remaining separator in
// skipped must equal allowed, and it must occur exactly count times.
func checkGap(skipped []wordSeparator, allowed wordSeparator, count int) ErrorKind {
	n := 0
	for _, s := range skipped {
		switch s {
		case sepSpace, sepEndOfLine, sepSingleQuote, sepDoubleQuote, sepColon:
			continue
		}
		if s != allowed {
			return &SyntaxError{}
		}
		n++
	}
	if n != count {
		return &SyntaxError{}
	}
	return nil
}

// requireOnlyEmpty verifies that words[0], the last real token of a line, is
// followed only by Empty words separated by permitted whitespace.
func requireOnlyEmpty(words []Word) ErrorKind {
	gap, idx := collectGapSeps(words, 1)
	if idx < len(words) {
		return &SyntaxError{}
	}
	return checkGap(gap, sepNone, 0)
}

// gatherOperands collects at most two non-Empty operand words following the
// opcode at words[0], enforcing the gap grammar between the opcode and the
// first operand (no comma) and between the two operands (exactly one
// comma). It returns the collected operands and the rest of the line from
// its last real token onward, for the caller to verify as trailing-only-Empty.
func gatherOperands(words []Word) ([]Word, []Word, ErrorKind) {
	gap1, idx1 := collectGapSeps(words, 1)
	if idx1 >= len(words) {
		return nil, words, nil
	}
	if err := checkGap(gap1, sepNone, 0); err != nil {
		return nil, nil, err
	}
	operands := []Word{words[idx1]}

	gap2, idx2 := collectGapSeps(words, idx1+1)
	if idx2 >= len(words) {
		return operands, words[idx1:], nil
	}
	if err := checkGap(gap2, sepComma, 1); err != nil {
		return nil, nil, err
	}
	operands = append(operands, words[idx2])
	return operands, words[idx2:], nil
}

// assembleLine validates a finished word vector into a Line, per §4.E.
func assembleLine(words []Word) (Line, ErrorKind) {
	var line Line

	i := 0
	for i < len(words) && words[i].Content.Kind == contentEmpty {
		i++
	}
	for i < len(words) && words[i].Content.Kind == contentLabelDecl {
		line.labels = append(line.labels, words[i].Content.Name)
		gap, next := collectGapSeps(words, i+1)
		if err := checkGap(gap, sepNone, 0); err != nil {
			return Line{}, err
		}
		i = next
	}

	if i >= len(words) {
		line.kind = lineEmpty
		return line, nil
	}

	first := words[i]
	switch first.Content.Kind {
	case contentStr:
		if err := requireOnlyEmpty(words[i:]); err != nil {
			return Line{}, err
		}
		line.kind = lineString
		line.str = first.Content.Str
		return line, nil

	case contentOpCode:
		operands, rest, err := gatherOperands(words[i:])
		if err != nil {
			return Line{}, err
		}
		if err := requireOnlyEmpty(rest); err != nil {
			return Line{}, err
		}
		if err := first.Content.Op.checkCompatibility(operands); err != nil {
			return Line{}, err
		}
		line.kind = lineInstruction
		line.op = first.Content.Op
		line.operands = operands
		return line, nil

	default:
		return Line{}, &SyntaxError{}
	}
}
