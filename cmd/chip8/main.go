// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/rom"
)

func main() {
	var compile string
	var romfile string
	var format string
	var listing bool
	var screen bool
	var timeout time.Duration
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&romfile, "r", "", "ROM image to load")
	flag.StringVar(&format, "f", "", "Force ROM format (bin, hex)")
	flag.BoolVar(&listing, "l", false, "Print program listing, do not execute")
	flag.BoolVar(&screen, "s", false, "Print the screen after execution")
	flag.DurationVar(&timeout, "t", 0, "Execution timeout (0 for none)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(romfile) != 0 {
		log.Fatalf("%v: -c and -r are mutually exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a ROM image.
	if len(romfile) != 0 {
		var data []byte
		var err error
		if len(format) != 0 {
			var rf rom.Format
			rf, err = rom.ParseFormat(format)
			if err != nil {
				log.Fatalf("%v: %v", format, err)
			}
			var inf *os.File
			inf, err = os.Open(romfile)
			if err != nil {
				log.Fatalf("%v: %v", romfile, err)
			}
			defer inf.Close()
			data, err = rom.Read(inf, rf)
		} else {
			data, err = rom.Load(romfile)
		}
		if err != nil {
			log.Fatalf("%v: %v", romfile, err)
		}
		emu.Program = cpu.Disassemble(data)
	}

	if listing {
		err := emu.Program.Listing(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = emu.Run(ctx)

	if verbose {
		fmt.Fprint(os.Stderr, emu.Cpu.String())
	}

	if screen {
		fmt.Print(emu.Cpu.Screen.String())
	}

	if err != nil {
		log.Fatal(err)
	}
}
