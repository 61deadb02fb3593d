package main

import (
	"fmt"
	"hotseatchess/ui"
	"os"
)

func main() {
	if err := ui.RunHotseat(); err != nil {
		fmt.Fprintf(os.Stderr, "error hotseat: %v\n", err)
		os.Exit(1)
	}
}
