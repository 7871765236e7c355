// Package roadgraph: SQLite loader for the persisted road network.
//
// The store carries two tables:
//
//	nodes(name TEXT, x REAL, y REAL)
//	edges(node_from TEXT, node_to TEXT, weight REAL)
//
// Loading is partial-failure tolerant: rows with NULL or non-numeric
// coordinates/weights, or edges referencing unknown endpoints, are
// skipped with a logged warning and counted in LoadStats. Only store
// access failures (open, query, scan) abort the load.
package roadgraph

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/katalvlaran/dynroute/geometry"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// LoadStats reports how many rows the loader accepted and skipped.
type LoadStats struct {
	NodesLoaded  int
	NodesSkipped int
	EdgesLoaded  int
	EdgesSkipped int
}

// Skipped returns the total number of rejected rows.
func (s LoadStats) Skipped() int { return s.NodesSkipped + s.EdgesSkipped }

// LoadSQLite opens the SQLite store at dsn, loads the road network and
// snapshots original weights before returning, so the graph is ready for
// the recalculation pipeline. Malformed rows are skipped, not fatal.
func LoadSQLite(ctx context.Context, dsn string, logger *slog.Logger) (*Graph, LoadStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("roadgraph: open store: %w", err)
	}
	defer db.Close()

	g := NewGraph()
	var stats LoadStats

	if err = loadNodes(ctx, db, g, &stats, logger); err != nil {
		return nil, stats, err
	}
	if err = loadEdges(ctx, db, g, &stats, logger); err != nil {
		return nil, stats, err
	}

	// Capture originals exactly once, before any effect is ever applied.
	g.SnapshotOriginals()

	logger.Info("road network loaded",
		"nodes", stats.NodesLoaded, "nodes_skipped", stats.NodesSkipped,
		"edges", stats.EdgesLoaded, "edges_skipped", stats.EdgesSkipped)

	return g, stats, nil
}

func loadNodes(ctx context.Context, db *sql.DB, g *Graph, stats *LoadStats, logger *slog.Logger) error {
	rows, err := db.QueryContext(ctx, "SELECT name, x, y FROM nodes")
	if err != nil {
		return fmt.Errorf("roadgraph: query nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name sql.NullString
		var rawX, rawY any
		if err = rows.Scan(&name, &rawX, &rawY); err != nil {
			return fmt.Errorf("roadgraph: scan node row: %w", err)
		}

		if !name.Valid || name.String == "" {
			stats.NodesSkipped++
			logger.Warn("skipping node with missing name")

			continue
		}
		x, okX := toFloat(rawX)
		y, okY := toFloat(rawY)
		if !okX || !okY {
			stats.NodesSkipped++
			logger.Warn("skipping node with invalid coordinates", "node", name.String)

			continue
		}

		if err = g.AddNode(name.String, geometry.Point{X: x, Y: y}); err != nil {
			stats.NodesSkipped++
			logger.Warn("skipping node", "node", name.String, "reason", err)

			continue
		}
		stats.NodesLoaded++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("roadgraph: iterate nodes: %w", err)
	}

	if stats.NodesLoaded == 0 {
		logger.Warn("no valid nodes found in store")
	}

	return nil
}

func loadEdges(ctx context.Context, db *sql.DB, g *Graph, stats *LoadStats, logger *slog.Logger) error {
	rows, err := db.QueryContext(ctx, "SELECT node_from, node_to, weight FROM edges")
	if err != nil {
		return fmt.Errorf("roadgraph: query edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var from, to sql.NullString
		var rawW any
		if err = rows.Scan(&from, &to, &rawW); err != nil {
			return fmt.Errorf("roadgraph: scan edge row: %w", err)
		}

		if !from.Valid || !to.Valid {
			stats.EdgesSkipped++
			logger.Warn("skipping edge with missing endpoint name")

			continue
		}
		w, ok := toFloat(rawW)
		if !ok || w < 0 {
			stats.EdgesSkipped++
			logger.Warn("skipping edge with invalid weight",
				"from", from.String, "to", to.String)

			continue
		}

		// AddEdge rejects endpoints that failed node validation and
		// duplicate (from, to) keys; both are skip-and-warn, not fatal.
		if err = g.AddEdge(from.String, to.String, w); err != nil {
			stats.EdgesSkipped++
			logger.Warn("skipping edge",
				"from", from.String, "to", to.String, "reason", err)

			continue
		}
		stats.EdgesLoaded++
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("roadgraph: iterate edges: %w", err)
	}

	if stats.EdgesLoaded == 0 && stats.NodesLoaded > 0 {
		logger.Warn("no valid edges found in store")
	}

	return nil
}

// toFloat coerces the dynamic types database/sql produces for SQLite
// columns (REAL, INTEGER, TEXT) into a float64. NULL and non-numeric
// text report false.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}

		return f, true
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}
