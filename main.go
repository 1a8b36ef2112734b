// Package main provides the entry point for rv5sim.
// rv5sim is a cycle-accurate 5-stage RISC-V pipeline simulator.
//
// For the full CLI, use: go run ./cmd/rv5sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rv5sim - RISC-V 5-stage pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: rv5sim [options] <program.elf>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -icache-config  Path to I-cache configuration JSON file")
	fmt.Println("  -dcache-config  Path to D-cache configuration JSON file")
	fmt.Println("  -cycles         Number of cycles to run (0 = until halt or error)")
	fmt.Println("  -trace          Path to write the per-cycle snapshot stream")
	fmt.Println("  -v              Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv5sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv5sim' instead.")
	}
}
