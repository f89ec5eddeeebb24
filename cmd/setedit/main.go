package main

import (
	"os"

	"github.com/ariel-frischer/setedit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
