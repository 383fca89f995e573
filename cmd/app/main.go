package main

import (
	"os"

	"github.com/yaghiashraf/pet-alert/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
