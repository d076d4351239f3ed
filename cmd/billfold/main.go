package main

import (
	"fmt"
	"os"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/cli"
)

func main() {
	// If the user asked for help, avoid initializing the full app
	skipInit := false
	for _, a := range os.Args[1:] {
		if a == "-h" || a == "--help" || a == "help" {
			skipInit = true
			break
		}
	}

	if !skipInit {
		a, err := app.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
