// Package graphio reads and writes undirected edge lists.
//
// The text format has one edge per line as two whitespace-separated integers.
// Blank lines are ignored and "//" starts a comment that runs to the end of
// the line, either on its own line or after an edge:
//
//	// COST239 core
//	0 1
//	0 2   // London - Amsterdam
//
// Sources are local files, snappy framed files (".sz") and s3://bucket/key
// objects.
package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

// SnappySuffix marks an edge file stored as a snappy framed stream
const SnappySuffix = ".sz"

// Options controls how edge lines are accepted
type Options struct {
	// RejectSelfLoops turns an edge (a, a) into a parse error
	RejectSelfLoops bool
}

// Parse reads an edge list with default options
func Parse(r io.Reader) (graph.EdgeList, error) {
	return ParseWithOptions(r, Options{})
}

// ParseWithOptions reads an edge list. The first malformed line aborts the
// parse and nothing is returned.
func ParseWithOptions(r io.Reader, opts Options) (graph.EdgeList, error) {
	edges := make(graph.EdgeList, 0, 64)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		content := raw
		if idx := strings.Index(content, "//"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		edge, err := parseEdge(content)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: err}
		}
		if opts.RejectSelfLoops && edge.IsSelfLoop() {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrSelfLoop}
		}
		edges = append(edges, edge)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("graphio: read failed after line %d: %w", lineNo, err)
	}

	return edges, nil
}

func parseEdge(content string) (graph.Edge, error) {
	fields := strings.Fields(content)
	if len(fields) != 2 {
		return graph.Edge{}, fmt.Errorf("%w: got %d tokens", ErrMalformedLine, len(fields))
	}

	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return graph.Edge{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return graph.Edge{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}

	return graph.Edge{A: a, B: b}, nil
}

// LoadFile reads an edge list from a local file, decompressing ".sz" files
func LoadFile(path string, opts Options) (graph.EdgeList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphio: open %s: %w", path, err)
	}
	defer f.Close()

	edges, err := ParseWithOptions(wrapReader(path, f), opts)
	if err != nil {
		return nil, fmt.Errorf("graphio: %s: %w", path, err)
	}
	return edges, nil
}

func wrapReader(name string, r io.Reader) io.Reader {
	if strings.HasSuffix(name, SnappySuffix) {
		return snappy.NewReader(r)
	}
	return r
}
