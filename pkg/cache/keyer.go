package cache

// Key type names reported to observability hooks.
const (
	KeyTypeGraph  = "graph"
	KeyTypeLayout = "layout"
)

// LayoutKeyOpts are the layout settings that change computed positions.
type LayoutKeyOpts struct {
	Direction  string  `json:"direction"`
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`
	RankSep    float64 `json:"rank_sep"`
	NodeSep    float64 `json:"node_sep"`
	Iterations int     `json:"iterations"`
}

// Keyer builds cache keys.
type Keyer interface {
	// GraphKey identifies a definition→graph conversion: the definition
	// text, the saved canvas (empty if none) and the layout settings.
	GraphKey(definitionHash, canvasHash string, opts LayoutKeyOpts) string

	// LayoutKey identifies a layout of a graph's structure.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes every input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(definitionHash, canvasHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeGraph, definitionHash, canvasHash, opts)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, graphHash, opts)
}
