// Package buildinfo exposes version metadata stamped at link time.
//
// The variables are meant to be overridden with -ldflags, e.g.:
//
//	go build -ldflags "-X github.com/aGautrain/legeclair/internal/buildinfo.Version=v1.2.3 \
//	  -X github.com/aGautrain/legeclair/internal/buildinfo.Date=2024-03-01 \
//	  -X github.com/aGautrain/legeclair/internal/buildinfo.Commit=abc1234"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the stamped build metadata to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
