package layout

import (
	"strings"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// Direction is the axis along which ranks advance.
type Direction string

const (
	// TopBottom advances ranks downwards: rank increases y.
	TopBottom Direction = "TB"
	// LeftRight advances ranks to the right: rank increases x.
	LeftRight Direction = "LR"
)

// ParseDirection accepts "TB" or "LR" in any case. An empty string means TB.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(TopBottom):
		return TopBottom, nil
	case string(LeftRight):
		return LeftRight, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDirection, "invalid direction %q (want TB or LR)", s)
}

func (d Direction) String() string { return string(d) }

const (
	DefaultNodeWidth  = 180
	DefaultNodeHeight = 60
	DefaultRankSep    = 80
	DefaultNodeSep    = 40
	DefaultIterations = 8
)

// Options controls node geometry and ordering effort. Zero fields take their
// defaults.
type Options struct {
	Direction  Direction
	NodeWidth  float64
	NodeHeight float64
	RankSep    float64 // gap between consecutive ranks
	NodeSep    float64 // gap between neighbours within a rank
	Iterations int     // barycenter sweeps

	// Orderer overrides the within-rank ordering. Nil means
	// Barycentric{Iterations: Iterations}.
	Orderer Orderer
}

// DefaultOptions returns the options used when a definition is first shown.
func DefaultOptions() Options {
	return Options{
		Direction:  TopBottom,
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		RankSep:    DefaultRankSep,
		NodeSep:    DefaultNodeSep,
		Iterations: DefaultIterations,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Direction == "" {
		o.Direction = d.Direction
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = d.NodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = d.NodeHeight
	}
	if o.RankSep < 0 {
		o.RankSep = 0
	} else if o.RankSep == 0 {
		o.RankSep = d.RankSep
	}
	if o.NodeSep < 0 {
		o.NodeSep = 0
	} else if o.NodeSep == 0 {
		o.NodeSep = d.NodeSep
	}
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	if o.Orderer == nil {
		o.Orderer = Barycentric{Iterations: o.Iterations}
	}
	return o
}

// Validate reports an unknown direction.
func (o Options) Validate() error {
	switch o.Direction {
	case "", TopBottom, LeftRight:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidDirection, "invalid direction %q (want TB or LR)", o.Direction)
}
