package main

import (
	"fmt"
	"os"

	elgamalcli "go.dedis.ch/elgamal/cmd/elgamal/internal"
)

func main() {
	app := elgamalcli.CLI()
	if err := app.Run(os.Args); err != nil {
		fmt.Printf("error: %+v\n", err)
		os.Exit(1)
	}
}
