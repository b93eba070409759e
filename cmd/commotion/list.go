package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenes and tilt variants",
	Long:  `Shows the registered scenes and the named tilt variants they accept.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Tilt variants:")
	for _, v := range config.Variants() {
		tilt, err := config.TiltForVariant(v)
		if err != nil {
			continue
		}
		fmt.Printf("  %-8s  %s x%g\n", v, tilt.Source, tilt.Scale)
	}

	fmt.Println()
	fmt.Println("Run 'commotion play <id> [--variant <name>]' to play a scene.")
}
