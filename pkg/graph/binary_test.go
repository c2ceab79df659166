package graph_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/osm"

	"bmssp_router/pkg/graph"
	osmparser "bmssp_router/pkg/osm"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	result := &osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 10, ToNodeID: 20, Weight: 100},
			{FromNodeID: 20, ToNodeID: 10, Weight: 100},
			{FromNodeID: 20, ToNodeID: 30, Weight: 200},
			{FromNodeID: 30, ToNodeID: 20, Weight: 200},
			{FromNodeID: 10, ToNodeID: 40, Weight: 300},
			{FromNodeID: 40, ToNodeID: 10, Weight: 300},
		},
		NodeLat: map[osm.NodeID]float64{10: 1.0, 20: 1.1, 30: 1.2, 40: 1.3},
		NodeLon: map[osm.NodeID]float64{10: 103.0, 20: 103.1, 30: 103.2, 40: 103.3},
	}
	return graph.Build(result)
}

func TestBinaryRoundTrip(t *testing.T) {
	original := buildTestGraph(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.graph.bin")

	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if loaded.NumNodes != original.NumNodes {
		t.Errorf("NumNodes: got %d, want %d", loaded.NumNodes, original.NumNodes)
	}
	if loaded.NumEdges != original.NumEdges {
		t.Errorf("NumEdges: got %d, want %d", loaded.NumEdges, original.NumEdges)
	}

	if len(loaded.FirstOut) != len(original.FirstOut) {
		t.Fatalf("FirstOut length: got %d, want %d", len(loaded.FirstOut), len(original.FirstOut))
	}
	for i := range original.FirstOut {
		if loaded.FirstOut[i] != original.FirstOut[i] {
			t.Errorf("FirstOut[%d]: got %d, want %d", i, loaded.FirstOut[i], original.FirstOut[i])
		}
	}

	if len(loaded.Head) != len(original.Head) {
		t.Fatalf("Head length: got %d, want %d", len(loaded.Head), len(original.Head))
	}
	for i := range original.Head {
		if loaded.Head[i] != original.Head[i] {
			t.Errorf("Head[%d]: got %d, want %d", i, loaded.Head[i], original.Head[i])
		}
		if loaded.Weight[i] != original.Weight[i] {
			t.Errorf("Weight[%d]: got %f, want %f", i, loaded.Weight[i], original.Weight[i])
		}
	}

	if !loaded.HasCoords() {
		t.Fatal("loaded graph should carry coordinates")
	}
	for i := uint32(0); i < original.NumNodes; i++ {
		if loaded.NodeLat[i] != original.NodeLat[i] {
			t.Errorf("NodeLat[%d]: got %f, want %f", i, loaded.NodeLat[i], original.NodeLat[i])
		}
		if loaded.NodeLon[i] != original.NodeLon[i] {
			t.Errorf("NodeLon[%d]: got %f, want %f", i, loaded.NodeLon[i], original.NodeLon[i])
		}
	}
}

func TestBinaryRoundTripNoCoords(t *testing.T) {
	original, err := graph.FromEdgeList(graph.EdgeListInput{
		NumNodes: 3,
		Edges: []graph.Edge{
			{U: 0, V: 1, W: 1.5},
			{U: 1, V: 2, W: 2.5},
		},
	})
	if err != nil {
		t.Fatalf("FromEdgeList: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nocoords.graph.bin")
	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	loaded, err := graph.ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if loaded.HasCoords() {
		t.Error("coordinate arrays should be absent")
	}
	if loaded.NumNodes != 3 || loaded.NumEdges != 2 {
		t.Errorf("got %d nodes %d edges, want 3 and 2", loaded.NumNodes, loaded.NumEdges)
	}
	if loaded.Weight[0] != 1.5 || loaded.Weight[1] != 2.5 {
		t.Errorf("weights not preserved: %v", loaded.Weight)
	}
}

func TestBinaryInvalidMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.graph.bin")
	os.WriteFile(path, []byte("NOT_A_GRAPH_HEADER_BLAH_BLAH_BLAH_MORE_DATA"), 0644)

	_, err := graph.ReadBinary(path)
	if err == nil {
		t.Fatal("expected error for invalid magic bytes")
	}
	if !strings.Contains(err.Error(), "magic") {
		t.Errorf("error should mention magic bytes, got: %v", err)
	}
}

func TestBinaryTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.graph.bin")
	os.WriteFile(path, []byte("BMSSPGRF"), 0644)

	_, err := graph.ReadBinary(path)
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
}

func TestBinaryCorruptedPayload(t *testing.T) {
	original := buildTestGraph(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.graph.bin")
	if err := graph.WriteBinary(path, original); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Flip a byte in the weight section, past the header and FirstOut.
	data[len(data)/2] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := graph.ReadBinary(path); err == nil {
		t.Fatal("expected error for corrupted payload")
	}
}

func TestBinaryMissingFile(t *testing.T) {
	_, err := graph.ReadBinary(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
