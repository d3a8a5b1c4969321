package main

import (
	"os"

	"github.com/folioworks/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
