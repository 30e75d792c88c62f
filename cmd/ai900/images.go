package main

import (
	"os"
	"strings"

	"github.com/timothywarner/ai900/internal/transport/azure"
)

// imageSource treats http(s) references as URLs and anything else as a local file.
// An unreadable file yields an empty source, which the client rejects.
func imageSource(ref string) azure.ImageSource {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return azure.ImageURL(ref)
	}
	data, err := os.ReadFile(ref) //nolint:gosec // path comes from the command line
	if err != nil {
		return azure.ImageSource{}
	}
	return azure.ImageSource{Data: data}
}
