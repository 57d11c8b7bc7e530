// Package buildinfo carries version data stamped in at link time:
//
//	go build -ldflags "-X github.com/embario/jukeclient/internal/buildinfo.Version=v0.3.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "N/A"
	Commit    = "N/A"
	BuildTime = "N/A"
)

// PrintBuildData writes the version banner shown at startup.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildTime)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}

// UserAgent returns the User-Agent value sent by the API client, e.g.
// "juke/v0.3.0". A missing version is reported as "dev".
func UserAgent(app string) string {
	v := Version
	if v == "" || v == "N/A" {
		v = "dev"
	}
	return app + "/" + v
}
