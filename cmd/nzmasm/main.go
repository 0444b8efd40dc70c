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
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lassandro/nzmasm/pkg/nzm"
)

var helpvar bool
var outvar string

const usage = "nzmasm [-out outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.Parse()
}

// sourceLine returns the 1-indexed line of source, or "" if out of range.
func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func nzmasm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var isStdin bool
	var raw []byte

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		isStdin = true
		log.SetPrefix("\033[1m<stdin>:\033[0m ")

		if outvar == "" {
			outvar = "out.nzm"
		}

		var err error
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Println(err)
			return 1
		}
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		filename := filepath.Base(args[0])

		if stat, err := os.Stat(args[0]); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid NZM assembly file", filename)
			return 1
		}

		var err error
		raw, err = os.ReadFile(args[0])
		if err != nil {
			log.Println(err)
			return 1
		}

		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m ", filename))

		if outvar == "" {
			outvar = strings.ReplaceAll(
				filename, filepath.Ext(filename), ".nzm",
			)
		}
	}

	source := string(raw)

	var buffer bytes.Buffer
	if err := nzm.Assemble(source, &buffer); err != nil {
		asmErr, ok := err.(*nzm.Error)
		if !ok {
			log.Println(err)
			return 1
		}

		if isStdin || asmErr.Line == 0 {
			log.Println(asmErr)
		} else if line := sourceLine(source, asmErr.Line); line != "" {
			log.Printf("%s\n%s", asmErr, line)
		} else {
			log.Println(asmErr)
		}

		return asmErr.Kind.Code()
	}

	if err := os.WriteFile(outvar, buffer.Bytes(), 0666); err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(nzmasm())
}
