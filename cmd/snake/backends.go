package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available front ends",
	Long:  `Shows the front ends that 'snake play --backend' accepts.`,
	Run:   runBackends,
}

func runBackends(_ *cobra.Command, _ []string) {
	backends := registry.List()

	if len(backends) == 0 {
		fmt.Println("No front ends available.")
		return
	}

	fmt.Println("Available front ends:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		maxNameLen = max(maxNameLen, len(b.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, b := range backends {
		fmt.Printf("  %-*s  %s\n", maxNameLen, b.Name, b.Description)
	}

	fmt.Println()
	fmt.Println("Run 'snake play --backend <name>' to use one.")
}
