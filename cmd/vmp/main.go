package main

import (
	"os"

	"github.com/vemorak/vemorak-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
