package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// Write writes edges in the text format, one "a b" line per edge, after an
// optional comment header
func Write(w io.Writer, edges graph.EdgeList, header string) error {
	bw := bufio.NewWriter(w)
	for _, line := range strings.Split(header, "\n") {
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintf(bw, "// %s\n", line); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e.A, e.B); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes edges to path, snappy framed when path ends in ".sz"
func WriteFile(path string, edges graph.EdgeList, header string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graphio: create %s: %w", path, err)
	}

	var w io.Writer = f
	var sw *snappy.Writer
	if strings.HasSuffix(path, SnappySuffix) {
		sw = snappy.NewBufferedWriter(f)
		w = sw
	}

	if err := Write(w, edges, header); err != nil {
		f.Close()
		return fmt.Errorf("graphio: write %s: %w", path, err)
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("graphio: write %s: %w", path, err)
		}
	}
	return f.Close()
}
