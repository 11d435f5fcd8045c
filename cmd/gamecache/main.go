// main is the entry point for the gamecache CLI.
package main

import (
	"fmt"
	"os"

	"github.com/EmilStenstrom/gamecache/cmd"
	"github.com/EmilStenstrom/gamecache/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseCaching()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
