package netdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paulmach/orb"

	"netbuild.opentransit.org/internal/network"
)

// GraphSummary is the stored metadata of one persisted graph.
type GraphSummary struct {
	Name          string
	NodeCount     int
	EdgeCount     int
	IsolatedCount int
	SavedAt       string
}

// SaveGraph stores a named graph, replacing any previous version under the
// same name. Nodes and edges are written inside one transaction in their graph
// iteration order, so a reload reproduces the same ordering.
func (c *Client) SaveGraph(ctx context.Context, name string, g *network.Graph) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM graphs WHERE name = ?;`, name); err != nil {
		return fmt.Errorf("error clearing previous graph: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO graphs (name, node_count, edge_count, isolated_count)
		VALUES (?, ?, ?, ?);
	`, name, g.NodeCount(), g.EdgeCount(), g.IsolatedCount())
	if err != nil {
		return fmt.Errorf("error inserting graph row: %w", err)
	}

	if err := insertNodes(ctx, tx, name, g); err != nil {
		return err
	}
	if err := insertEdges(ctx, tx, name, g); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func insertNodes(ctx context.Context, tx *sql.Tx, name string, g *network.Graph) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (graph_name, node_id, display_name, x, y, position)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing node insert: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for i, n := range g.Nodes() {
		if _, err := stmt.ExecContext(ctx, name, n.ID, n.Name, n.Location[0], n.Location[1], i); err != nil {
			return fmt.Errorf("error inserting node %s: %w", n.ID, err)
		}
	}
	return nil
}

func insertEdges(ctx context.Context, tx *sql.Tx, name string, g *network.Graph) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edges (graph_name, from_node, to_node, line_id, length, position)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("error preparing edge insert: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for i, e := range g.Edges() {
		if _, err := stmt.ExecContext(ctx, name, e.From, e.To, e.LineID, e.Length, i); err != nil {
			return fmt.Errorf("error inserting edge %s-%s: %w", e.From, e.To, err)
		}
	}
	return nil
}

// LoadGraph rebuilds a persisted graph by name.
func (c *Client) LoadGraph(ctx context.Context, name string) (*network.Graph, error) {
	var exists int
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM graphs WHERE name = ?;`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error querying graph %s: %w", name, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("graph %s not found", name)
	}

	g := network.NewGraph()

	rows, err := c.DB.QueryContext(ctx, `
		SELECT node_id, display_name, x, y FROM nodes
		WHERE graph_name = ? ORDER BY position;
	`, name)
	if err != nil {
		return nil, fmt.Errorf("error querying nodes: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	for rows.Next() {
		var n network.Node
		var x, y float64
		if err := rows.Scan(&n.ID, &n.Name, &x, &y); err != nil {
			return nil, fmt.Errorf("error scanning node: %w", err)
		}
		n.Location = orb.Point{x, y}
		g.AddNode(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nodes: %w", err)
	}

	edgeRows, err := c.DB.QueryContext(ctx, `
		SELECT from_node, to_node, line_id, length FROM edges
		WHERE graph_name = ? ORDER BY position;
	`, name)
	if err != nil {
		return nil, fmt.Errorf("error querying edges: %w", err)
	}
	defer edgeRows.Close() // nolint:errcheck

	for edgeRows.Next() {
		var from, to, lineID string
		var length float64
		if err := edgeRows.Scan(&from, &to, &lineID, &length); err != nil {
			return nil, fmt.Errorf("error scanning edge: %w", err)
		}
		g.AddEdge(from, to, lineID, length)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edges: %w", err)
	}

	return g, nil
}

// ListGraphs returns the summaries of all persisted graphs, newest first.
func (c *Client) ListGraphs(ctx context.Context) ([]GraphSummary, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT name, node_count, edge_count, isolated_count, saved_at
		FROM graphs ORDER BY saved_at DESC, name;
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying graphs: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var out []GraphSummary
	for rows.Next() {
		var s GraphSummary
		if err := rows.Scan(&s.Name, &s.NodeCount, &s.EdgeCount, &s.IsolatedCount, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("error scanning graph summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
