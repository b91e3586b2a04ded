package board

import (
	"fmt"
	"pigeons/utils"
	"strings"
)

// Kind decides which faction may stand on a node and what it offers.
type Kind int

const (
	BalconyEntry Kind = iota
	BalconySlot
	Wire
	Road
	Van
	Park
	Dumpster
	Elevator
	Event
)

var kindNames = []string{
	"BALCONY_ENTRY", "BALCONY_SLOT", "WIRE", "ROAD", "VAN",
	"PARK", "DUMPSTER", "ELEVATOR", "EVENT",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToUpper(string(text))
	for i, n := range kindNames {
		if n == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// IsHub reports whether the node offers a repeatable gather instead of a one-shot pickup.
func IsHub(k Kind) bool {
	return k == Dumpster || k == Park
}

type Resource int

const (
	NoResource Resource = iota
	Straw
	Twig
	Coin
)

func (r Resource) String() string {
	switch r {
	case Straw:
		return "STRAW"
	case Twig:
		return "TWIG"
	case Coin:
		return "COIN"
	}
	return "NONE"
}

type Faction int

const (
	NoFaction Faction = iota
	Pigeon
	Human
)

func (f Faction) String() string {
	switch f {
	case Pigeon:
		return "PIGEON"
	case Human:
		return "HUMAN"
	}
	return "NONE"
}

// Opponent returns the other side. Panics on NoFaction.
func (f Faction) Opponent() Faction {
	switch f {
	case Pigeon:
		return Human
	case Human:
		return Pigeon
	}
	panic("no opponent for " + f.String())
}

type StructureKind int

const (
	Nest StructureKind = iota
	Prop
	Spikes
	StickyTrap
)

func (s StructureKind) String() string {
	return [...]string{"NEST", "PROP", "SPIKES", "STICKY_TRAP"}[s]
}

type Structure struct {
	Kind  StructureKind
	Owner Faction
}

type Node struct {
	ID        string     // Unique identifier for the node
	Kind      Kind       // Traversal and interaction class
	X, Y      float64    // Layout position in percent, presentation only
	Edges     []string   // IDs of connected nodes
	Resource  Resource   // One-shot pickup, permanent on hubs
	Structure *Structure // At most one structure per node
	Balcony   int        // Balcony cluster, -1 outside any cluster
}

// Board represents the game graph, containing all the nodes.
type Board struct {
	Nodes     map[string]*Node // Maps node IDs to Node pointers
	Order     []string         // Node IDs in creation order
	Balconies int              // Number of balcony clusters
}

// NewBoard creates and returns an empty Board.
func NewBoard() *Board {
	return &Board{
		Nodes: make(map[string]*Node),
	}
}

// AddNode adds a new node to the board.
func (b *Board) AddNode(n *Node) {
	if _, ok := b.Nodes[n.ID]; !ok {
		b.Order = append(b.Order, n.ID)
	}
	b.Nodes[n.ID] = n
}

// AddEdge adds a bidirectional edge between two nodes.
func (b *Board) AddEdge(id1, id2 string) {
	n1, n2 := b.Nodes[id1], b.Nodes[id2]
	if n1 == nil || n2 == nil {
		panic(fmt.Sprintf("edge between unknown nodes %q and %q", id1, id2))
	}
	if !utils.Contains(n1.Edges, id2) {
		n1.Edges = append(n1.Edges, id2)
	}
	if !utils.Contains(n2.Edges, id1) {
		n2.Edges = append(n2.Edges, id1)
	}
}

// AreAdjacent checks if two nodes share an edge.
func (b *Board) AreAdjacent(id1, id2 string) bool {
	n := b.Nodes[id1]
	return n != nil && utils.Contains(n.Edges, id2)
}

// OfKind lists node IDs of the given kind in creation order.
func (b *Board) OfKind(k Kind) []string {
	var ids []string
	for _, id := range b.Order {
		if b.Nodes[id].Kind == k {
			ids = append(ids, id)
		}
	}
	return ids
}

// NestCount counts nests placed on one balcony cluster.
func (b *Board) NestCount(balcony int) int {
	count := 0
	for _, n := range b.Nodes {
		if n.Balcony == balcony && n.Structure != nil && n.Structure.Kind == Nest {
			count++
		}
	}
	return count
}

// List returns the nodes in creation order.
func (b *Board) List() []*Node {
	nodes := make([]*Node, 0, len(b.Order))
	for _, id := range b.Order {
		nodes = append(nodes, b.Nodes[id])
	}
	return nodes
}

// Copy returns a deep copy, nothing is shared with the receiver.
func (b *Board) Copy() *Board {
	c := &Board{
		Nodes:     make(map[string]*Node, len(b.Nodes)),
		Order:     append([]string(nil), b.Order...),
		Balconies: b.Balconies,
	}
	for id, n := range b.Nodes {
		nc := *n
		nc.Edges = append([]string(nil), n.Edges...)
		if n.Structure != nil {
			s := *n.Structure
			nc.Structure = &s
		}
		c.Nodes[id] = &nc
	}
	return c
}
