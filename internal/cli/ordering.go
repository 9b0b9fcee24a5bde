package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowcanvas/pkg/dag"
	"github.com/matzehuels/flowcanvas/pkg/layout"
)

// tracedOrderer wraps the barycentric orderer with debug logging: the
// crossing count of the insertion order, the count after the sweeps, and
// the rows that still cross.
//
// The orderer is not safe for concurrent use.
type tracedOrderer struct {
	layout.Barycentric
	logger *log.Logger
}

// newTracedOrderer creates a traced barycentric orderer.
func newTracedOrderer(logger *log.Logger, iterations int) layout.Orderer {
	return &tracedOrderer{
		Barycentric: layout.Barycentric{Iterations: iterations},
		logger:      logger,
	}
}

// OrderRows implements layout.Orderer.
func (o *tracedOrderer) OrderRows(g *dag.DAG) map[int][]string {
	start := time.Now()
	initial := dag.CountCrossings(g, insertionOrder(g))

	result := o.Barycentric.OrderRows(g)
	crossings := dag.CountCrossings(g, result)

	o.logger.Debug(fmt.Sprintf("Ordered %d rows", g.RowCount()),
		"crossings", crossings,
		"initial", initial,
		"elapsed", time.Since(start).Round(time.Microsecond))

	if crossings == 0 {
		return result
	}
	rows := g.RowIDs()
	for i := 0; i+1 < len(rows); i++ {
		if c := dag.CountLayerCrossings(g, result[rows[i]], result[rows[i+1]]); c > 0 {
			o.logger.Debugf("  Rows %d-%d: %d crossings", rows[i], rows[i+1], c)
		}
	}
	return result
}

func insertionOrder(g *dag.DAG) map[int][]string {
	orders := make(map[int][]string, g.RowCount())
	for _, r := range g.RowIDs() {
		orders[r] = dag.NodeIDs(g.NodesInRow(r))
	}
	return orders
}
