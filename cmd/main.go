package main

import (
	"fmt"
	"os"

	"github.com/ostafen/apngkit/cmd/cmd"
	"github.com/ostafen/apngkit/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func PrintLogo() {
	fmt.Println("                          _    _ _   ")
	fmt.Println("  __ _ _ __  _ __   __ _| | _(_) |_ ")
	fmt.Println(" / _` | '_ \\| '_ \\ / _` | |/ / | __|")
	fmt.Println("| (_| | |_) | | | | (_| |   <| | |_ ")
	fmt.Println(" \\__,_| .__/|_| |_|\\__, |_|\\_\\_|\\__|")
	fmt.Println("      |_|          |___/            ")
	fmt.Println()
	fmt.Println("Animated PNG split and merge tool")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
