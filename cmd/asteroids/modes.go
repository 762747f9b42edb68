package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asteroids-destroyer/internal/registry"

	// Registers the modes
	_ "github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids/mode"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all available modes",
	Long:  `Shows every registered rule set.`,
	Args:  cobra.NoArgs,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, m := range modes {
		maxNameLen = max(maxNameLen, len(m.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxNameLen, m.Name, m.Title)
	}

	fmt.Println()
	fmt.Println("Run 'asteroids play --mode <name>' to start in a mode.")
}
