// Package export serializes built network graphs for external consumers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"netbuild.opentransit.org/internal/network"
)

// WriteAdjacency writes the graph's binary adjacency matrix as delimited text.
//
// The matrix is square, indexed by node identifier in the graph's node
// iteration order, with identifiers as both row and column headers. Cell (i,j)
// is 1 when an edge exists between i and j and 0 otherwise; edge length and
// line provenance are not reflected in this form.
func WriteAdjacency(g *network.Graph, w io.Writer) error {
	writer := csv.NewWriter(w)
	ids := g.NodeIDs()

	header := make([]string, 0, len(ids)+1)
	header = append(header, "")
	header = append(header, ids...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing adjacency header: %w", err)
	}

	row := make([]string, len(ids)+1)
	for _, from := range ids {
		row[0] = from
		for j, to := range ids {
			if g.HasEdge(from, to) {
				row[j+1] = "1"
			} else {
				row[j+1] = "0"
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing adjacency row for %s: %w", from, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveAdjacency writes the adjacency matrix to a file, creating or truncating
// it.
func SaveAdjacency(g *network.Graph, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating adjacency file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return WriteAdjacency(g, f)
}
