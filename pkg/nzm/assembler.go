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

// Package nzm implements the NZM assembler core: a character-stream
// tokenizer, a line assembler, and a two-pass address resolver and binary
// emitter. Command-line parsing, file I/O, and diagnostic printing are
// deliberately left to its callers.
package nzm

import "io"

// assembler is the driver of §4.F: it owns the tokenizer, the in-progress
// line, the finalized line sequence, and the label table across a single
// assembly.
type assembler struct {
	builder      *WordBuilder
	currentWords []Word
	lines        []Line
	// labels maps each declared name to its line index during pass 1;
	// resolveAddresses then overwrites every entry with its byte address.
	labels map[string]uint32
}

// attribute wraps an ErrorKind with the current line number, the 1-based
// index of the line under construction at the moment of failure.
func (a *assembler) attribute(kind ErrorKind) error {
	return &Error{Line: len(a.lines) + 1, Kind: kind}
}

func (a *assembler) pushWord(w Word) error {
	if w.Content.Kind == contentLabelDecl {
		name := w.Content.Name
		if _, exists := a.labels[name]; exists {
			return a.attribute(&LabelDeclaredTwice{Name: name})
		}
		a.labels[name] = uint32(len(a.lines))
	}
	a.currentWords = append(a.currentWords, w)
	return nil
}

func (a *assembler) pushCurrentLine() error {
	words := a.currentWords
	a.currentWords = nil

	line, errKind := assembleLine(words)
	if errKind != nil {
		return a.attribute(errKind)
	}
	line.number = len(a.lines) + 1
	a.lines = append(a.lines, line)
	return nil
}

func (a *assembler) handleRequest(req wordRequest) error {
	switch req.kind {
	case reqPushWord:
		return a.pushWord(req.word)
	case reqPushLine:
		if err := a.pushWord(req.word); err != nil {
			return err
		}
		return a.pushCurrentLine()
	}
	return nil
}

// checkLabelReferences is step 3 of finalization (§4.F): every Label
// reference left over after pass 1 must resolve to a declared name.
func (a *assembler) checkLabelReferences() error {
	for _, line := range a.lines {
		for _, w := range line.operands {
			if w.Content.Kind != contentLabel {
				continue
			}
			if _, ok := a.labels[w.Content.Name]; !ok {
				return &Error{Line: line.number, Kind: &LabelIsNotDeclared{Name: w.Content.Name}}
			}
		}
	}
	return nil
}

// Assemble is the core's single entry point: it tokenizes, validates, and
// encodes source into sink, per SPEC_FULL.md §6.
func Assemble(source string, sink io.Writer) error {
	if len(source) == 0 {
		return &Error{Line: 0, Kind: &EmptyText{}}
	}

	runes := []rune(source)
	pos := 0
	cursor := &runeCursor{runes: runes, pos: &pos}

	a := &assembler{
		builder: newWordBuilder(),
		labels:  make(map[string]uint32),
	}

	for {
		c, ok := cursor.next()
		if !ok {
			break
		}
		req, errKind := a.builder.addChar(c, cursor)
		if errKind != nil {
			return a.attribute(errKind)
		}
		if err := a.handleRequest(req); err != nil {
			return err
		}
	}

	// main is checked before the end-of-file flush: a LabelDeclaration is
	// always terminated by an explicit colon, never by end-of-file, so every
	// declared label is already visible here even though one trailing word
	// has not yet been flushed. Checking here, rather than after the flush,
	// also fixes this step's error precedence against a malformed final
	// token (see SPEC_FULL.md §4.F).
	if _, ok := a.labels["main"]; !ok {
		return &Error{Line: 0, Kind: &NoMain{}}
	}

	word, errKind := a.builder.endOfFile()
	if errKind != nil {
		return a.attribute(errKind)
	}
	if err := a.pushWord(word); err != nil {
		return err
	}
	if err := a.pushCurrentLine(); err != nil {
		return err
	}

	if err := a.checkLabelReferences(); err != nil {
		return err
	}

	resolveAddresses(a.lines, a.labels)

	return encode(a.lines, a.labels, sink)
}
