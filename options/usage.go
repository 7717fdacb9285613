package options

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteUsage writes the option listing to w. Only the common options are
// listed unless verbose is set.
func WriteUsage(w io.Writer, program string, verbose bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Usage: %s [<vm-flags>] <script-file> [<script-arguments>]\n", program)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Executes the script in <script-file> with the given arguments.")
	fmt.Fprintln(bw)

	if verbose {
		fmt.Fprintln(bw, "Supported options:")
	} else {
		fmt.Fprintln(bw, "Common options:")
	}

	listed := make([]*Descriptor, 0, len(descriptors))
	for i := range descriptors {
		if verbose || !descriptors[i].Verbose {
			listed = append(listed, &descriptors[i])
		}
	}

	// Align descriptions on the widest synopsis
	maxWidth := 0
	for _, d := range listed {
		maxWidth = max(maxWidth, len(d.Synopsis()))
	}
	for _, d := range listed {
		showOption(bw, d, maxWidth)
	}

	if !verbose {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "Run '%s -h -v' for all options.\n", program)
	}

	return bw.Flush()
}

func showOption(w io.Writer, d *Descriptor, maxWidth int) {
	synopsis := d.Synopsis()
	fmt.Fprint(w, "  ", synopsis)
	if d.Usage != "" {
		fmt.Fprint(w, strings.Repeat(" ", maxWidth-len(synopsis)), "  ", d.Usage)
	}
	if d.Kind == KindEnum {
		if name := d.Enum.NameOf(0); name != "" {
			fmt.Fprintf(w, " (default: %s)", name)
		}
	}
	fmt.Fprintln(w)
}

// WriteVersion writes the version line.
func WriteVersion(w io.Writer, program, version string) error {
	_, err := fmt.Fprintf(w, "%s version %s\n", program, version)
	return err
}
