package main

import (
	"os"

	"github.com/cloud-ru/estate-loan-calculator/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
