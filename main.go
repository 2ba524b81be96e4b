package main

import (
	"os"

	"github.com/histclean/histclean/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
