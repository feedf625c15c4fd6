package main

import (
	"os"

	"github.com/msto63/wachturm/cmd/wachturm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
