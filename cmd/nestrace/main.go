// Command nestrace loads an iNES ROM, runs its CPU core from $C000, and
// either prints a golden-log-style trace of every instruction or diffs
// that trace against a reference log.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"nes6502/cartridge"
	"nes6502/cpu"
	"nes6502/mem"
)

func main() {
	romPath := flag.String("rom", "", "path to an iNES ROM image")
	compare := flag.String("compare", "", "path to a golden trace log to diff against")
	steps := flag.Int("steps", 0, "stop printing after this many instructions (0 = forever); not used with -compare or -tui")
	tui := flag.Bool("tui", false, "open an interactive trace pager instead of printing to stdout")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("nestrace: -rom is required")
	}

	f, err := os.Open(*romPath)
	if err != nil {
		log.Fatalf("nestrace: %v", err)
	}
	defer f.Close()

	cart, err := cartridge.LoadINES(f)
	if err != nil {
		log.Fatalf("nestrace: loading rom: %v", err)
	}

	bus := mem.NewBus(cart)
	c := cpu.New(bus)
	c.ResetAt(0xc000)
	c.P = 0x24

	if *tui {
		runTUI(c)
		return
	}

	if *compare != "" {
		runCompare(c, *compare)
		return
	}

	runPrint(c, *steps)
}

func runPrint(c *cpu.Cpu, n int) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for i := 0; n == 0 || i < n; i++ {
		fmt.Fprintln(w, c.Trace())
		c.Step()
	}
}

func runCompare(c *cpu.Cpu, goldenPath string) {
	f, err := os.Open(goldenPath)
	if err != nil {
		log.Fatalf("nestrace: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		want := strings.TrimRight(scanner.Text(), " \r\n")
		got := c.Trace()
		if got != want {
			fmt.Printf("mismatch at line %d:\n  want: %s\n  got:  %s\n", line, want, got)
			os.Exit(1)
		}
		c.Step()
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("nestrace: reading golden log: %v", err)
	}
	fmt.Printf("ok: %d lines matched\n", line)
}
