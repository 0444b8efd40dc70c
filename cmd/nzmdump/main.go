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
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"
)

var helpvar bool

const usage = "nzmdump filename.nzm"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	log.SetPrefix("\033[1mnzmdump:\033[0m ")
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.Parse()
}

// page prints lines a screenful at a time when stdout is a terminal,
// pausing on every key but 'q'; otherwise it dumps everything straight
// through, exactly as piping to a file or another process expects.
func page(lines []string) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		for _, l := range lines {
			fmt.Println(l)
		}
		return
	}

	_, height, err := term.GetSize(fd)
	if err != nil || height <= 1 {
		height = 24
	}

	enterRawTerm()
	defer exitRawTerm()

	reader := bufio.NewReader(os.Stdin)
	shown := 0
	for i, l := range lines {
		fmt.Print(l, "\r\n")
		shown++
		if shown < height-1 || i == len(lines)-1 {
			continue
		}
		shown = 0
		fmt.Print("-- more (space: next page, q: quit) --\r")
		key, err := reader.ReadByte()
		fmt.Print("\r                                       \r")
		if err != nil || key == 'q' {
			return
		}
	}
}

func nzmdump() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()
	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Println(err)
		return 1
	}

	if len(data) < 4 {
		log.Println("file is shorter than the 4-byte header")
		return 1
	}

	mainAddr := binary.BigEndian.Uint32(data[:4])

	decoded := disassemble(data[4:])

	lines := make([]string, 0, len(decoded)+1)
	lines = append(lines, fmt.Sprintf("; main @ %#08x", mainAddr))
	for _, d := range decoded {
		marker := "  "
		if d.Address == mainAddr {
			marker = "->"
		}
		lines = append(lines, fmt.Sprintf("%s %#08x  %-11s  %s", marker, d.Address, d.HexBytes, d.Mnemonic))
	}

	page(lines)
	return 0
}

func main() {
	os.Exit(nzmdump())
}
