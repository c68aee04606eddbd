package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/tensorlakeai/indexify-cli/internal/client"
)

// RenderError writes err for a human. A server response body carried by the
// error is appended, indented, under a Body: heading.
func RenderError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)

	body, ok := client.ResponseBody(err)
	if !ok {
		return
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	fmt.Fprintln(w, "Body:")
	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
