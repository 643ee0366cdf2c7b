package main

import (
	"fmt"
	"os"

	"github.com/meysamhadeli/tierlist/cmd"
	"github.com/meysamhadeli/tierlist/constants/lipgloss"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
