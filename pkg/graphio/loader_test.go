package graphio

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-steiner/pkg/graph"
)

func assertEdges(t *testing.T, got, want graph.EdgeList) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	input := `// header comment
1 2

   // indented comment
2 3 // trailing comment
	3   4
4 1//no space before comment
`
	edges, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assertEdges(t, edges, graph.EdgeList{{1, 2}, {2, 3}, {3, 4}, {4, 1}})
}

func TestParse_KeepsOrderAndDuplicates(t *testing.T) {
	edges, err := Parse(strings.NewReader("5 1\n1 5\n5 1\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assertEdges(t, edges, graph.EdgeList{{5, 1}, {1, 5}, {5, 1}})
}

func TestParse_Empty(t *testing.T) {
	edges, err := Parse(strings.NewReader("// nothing here\n\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("Expected no edges, got %v", edges)
	}
}

func TestParse_MalformedLines(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		wantErr error
	}{
		{"one token", "1 2\n3\n", 2, ErrMalformedLine},
		{"three tokens", "1 2 3\n", 1, ErrMalformedLine},
		{"three tokens before comment", "1 2\n\n1 2 3 // x\n", 3, ErrMalformedLine},
		{"non-integer", "1 2\n2 x\n", 2, strconv.ErrSyntax},
		{"non-integer is malformed", "1 2\n2 x\n", 2, ErrMalformedLine},
		{"float", "1.5 2\n", 1, strconv.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if edges != nil {
				t.Errorf("no partial graph on error, got %v", edges)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if perr.Line != tt.line {
				t.Errorf("Line = %d, want %d", perr.Line, tt.line)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_SelfLoops(t *testing.T) {
	edges, err := Parse(strings.NewReader("1 1\n1 2\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assertEdges(t, edges, graph.EdgeList{{1, 1}, {1, 2}})

	_, err = ParseWithOptions(strings.NewReader("1 2\n3 3\n"), Options{RejectSelfLoops: true})
	if !errors.Is(err, ErrSelfLoop) {
		t.Fatalf("Expected ErrSelfLoop, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Line != 2 {
		t.Errorf("Expected a ParseError on line 2, got %v", err)
	}
}

func TestLoadFile_Cost239(t *testing.T) {
	edges, err := LoadFile("testdata/cost239.txt", Options{})
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(edges) != 36 {
		t.Fatalf("Expected 36 edges, got %d", len(edges))
	}
	if edges[0] != (graph.Edge{A: 0, B: 1}) || edges[35] != (graph.Edge{A: 12, B: 13}) {
		t.Errorf("unexpected first/last edge %v %v", edges[0], edges[35])
	}

	stats := Stats(edges)
	if stats.NodeCount != 18 || stats.SelfLoops != 0 || stats.DuplicateEdges != 0 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadFile_Snappy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.txt.sz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w := snappy.NewBufferedWriter(f)
	if _, err := io.WriteString(w, "1 2\n2 3 // c\n3 4\n1 4\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	edges, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	assertEdges(t, edges, graph.EdgeList{{1, 2}, {2, 3}, {3, 4}, {1, 4}})
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := ParseS3URL("s3://topologies/bench/cost239.txt")
	if err != nil {
		t.Fatalf("ParseS3URL failed: %v", err)
	}
	if bucket != "topologies" || key != "bench/cost239.txt" {
		t.Errorf("got bucket %q key %q", bucket, key)
	}

	for _, bad := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key", "file:///tmp/x"} {
		if _, _, err := ParseS3URL(bad); !errors.Is(err, ErrInvalidS3URL) {
			t.Errorf("%q: expected ErrInvalidS3URL, got %v", bad, err)
		}
	}
}

type fakeS3 struct {
	objects map[string]string
	bucket  string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = *in.Bucket
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestLoader_S3Source(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"graphs/square.txt": "1 2\n2 3\n3 4\n1 4\n"}}
	l := &Loader{S3: fake}

	edges, err := l.Load(context.Background(), "s3://bench/graphs/square.txt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(edges) != 4 {
		t.Errorf("Expected 4 edges, got %d", len(edges))
	}
	if fake.bucket != "bench" {
		t.Errorf("bucket = %q, want bench", fake.bucket)
	}

	if _, err := l.Load(context.Background(), "s3://bench/graphs/missing.txt"); err == nil {
		t.Error("Expected error for a missing object")
	}
}

func TestLoader_LocalSource(t *testing.T) {
	edges, err := Load(context.Background(), "testdata/cost239.txt", Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(edges) != 36 {
		t.Errorf("Expected 36 edges, got %d", len(edges))
	}
}

func TestStats_DuplicatesAndLoops(t *testing.T) {
	stats := Stats(graph.EdgeList{{1, 2}, {2, 1}, {3, 3}, {1, 2}})
	want := LoadStats{EdgeCount: 4, NodeCount: 3, SelfLoops: 1, DuplicateEdges: 2}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestNewS3Client_Overrides(t *testing.T) {
	client, err := NewS3Client(context.Background(), S3Config{
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("NewS3Client failed: %v", err)
	}

	opts := client.Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle {
		t.Errorf("region %q path style %v", opts.Region, opts.UsePathStyle)
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %v", opts.BaseEndpoint)
	}

	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if creds.AccessKeyID != "minio" {
		t.Errorf("AccessKeyID = %q, want minio", creds.AccessKeyID)
	}
}
