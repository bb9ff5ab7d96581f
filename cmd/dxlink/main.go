// Command dxlink builds and serves deep links into a MOLGENIS data explorer.
package main

import (
	"os"

	"github.com/roach88/dxlink/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
