//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of sandfall requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/sandfall` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a terminal viewer, use ./cmd/sandfall-term.")
	os.Exit(2)
}
