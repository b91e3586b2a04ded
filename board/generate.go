package board

import (
	"errors"
	"fmt"
	"pigeons/meta"
)

const (
	MinBalconies = 4
	MaxBalconies = 6
)

// Fixed node IDs.
const (
	DumpsterID   = "dumpster"
	ParkID       = "park"
	VanID        = "van-bl"
	ElevatorTL   = "elevator-tl"
	ElevatorTR   = "elevator-tr"
	ElevatorBR   = "elevator-br"
	ElevatorBL   = "elevator-bl"
	RoadTopID    = "road-top"
	RoadBottomID = "road-bottom"
)

// Rand is the randomness the generator and the match need. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Config shapes the generated board. Topology is fixed by the config, only the
// decorations depend on the random source.
type Config struct {
	Balconies   int     `yaml:"balconies"`
	SlotChains  []int   `yaml:"slot_chains"` // length of each slot branch rooted at an entry
	WireSteps   int     `yaml:"wire_steps"`  // intermediate wire nodes on a short link
	EventChance float64 `yaml:"event_chance"`
	CoinChance  float64 `yaml:"coin_chance"`
	TwigChance  float64 `yaml:"twig_chance"`
}

func DefaultConfig() Config {
	return Config{
		Balconies:   meta.BALCONIES,
		SlotChains:  []int{2, 2, 1},
		WireSteps:   meta.WIRE_STEPS,
		EventChance: meta.EVENT_CHANCE,
		CoinChance:  meta.COIN_CHANCE,
		TwigChance:  meta.TWIG_CHANCE,
	}
}

func (c Config) Validate() error {
	if c.Balconies < MinBalconies || c.Balconies > MaxBalconies {
		return fmt.Errorf("balconies must be between %d and %d, got %d", MinBalconies, MaxBalconies, c.Balconies)
	}
	if len(c.SlotChains) == 0 {
		return errors.New("at least one slot chain is required")
	}
	for _, l := range c.SlotChains {
		if l < 1 {
			return fmt.Errorf("slot chain length must be positive, got %d", l)
		}
	}
	if c.WireSteps < 1 {
		return fmt.Errorf("wire steps must be positive, got %d", c.WireSteps)
	}
	for _, p := range []float64{c.EventChance, c.CoinChance, c.TwigChance} {
		if p < 0 || p > 1 {
			return fmt.Errorf("chance %v out of [0,1]", p)
		}
	}
	return nil
}

func EntryID(balcony int) string {
	return fmt.Sprintf("balcony-%d-entry", balcony)
}

func SlotID(balcony, slot int) string {
	return fmt.Sprintf("balcony-%d-slot-%d", balcony, slot)
}

type generator struct {
	cfg   Config
	rng   Rand
	board *Board
}

// Generate builds a board for the config. An invalid config is a programming
// error and panics; validate loaded configs first.
func Generate(cfg Config, rng Rand) *Board {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	g := &generator{cfg: cfg, rng: rng, board: NewBoard()}
	g.board.Balconies = cfg.Balconies

	entries := g.balconies()
	g.hubs()
	g.wires(entries)
	g.patrol(entries)

	return g.board
}

func (g *generator) rows() int {
	return (g.cfg.Balconies + 1) / 2
}

// rowY spreads balcony rows evenly between 20% and 80%.
func (g *generator) rowY(row int) float64 {
	return 20 + 60*float64(row)/float64(g.rows()-1)
}

// balconies lays the clusters out in two columns. Each cluster is an entry
// with slot branches hanging off it.
func (g *generator) balconies() []string {
	entries := make([]string, 0, g.cfg.Balconies)
	for b := 0; b < g.cfg.Balconies; b++ {
		dirX := -1.0
		entryX := 25.0
		if b%2 == 1 {
			dirX = 1
			entryX = 75
		}
		entryY := g.rowY(b / 2)

		entry := &Node{ID: EntryID(b), Kind: BalconyEntry, X: entryX, Y: entryY, Balcony: b}
		g.board.AddNode(entry)
		entries = append(entries, entry.ID)

		slot := 1
		chains := len(g.cfg.SlotChains)
		for c, length := range g.cfg.SlotChains {
			dy := (float64(c) - float64(chains-1)/2) * 5
			prev := entry.ID
			for k := 0; k < length; k++ {
				n := &Node{
					ID:      SlotID(b, slot),
					Kind:    BalconySlot,
					X:       entryX + dirX*5*float64(k+1),
					Y:       entryY + dy,
					Balcony: b,
				}
				g.board.AddNode(n)
				g.board.AddEdge(prev, n.ID)
				prev = n.ID
				slot++
			}
		}
	}
	return entries
}

func (g *generator) hubs() {
	g.board.AddNode(&Node{ID: DumpsterID, Kind: Dumpster, X: 10, Y: 10, Resource: Straw, Balcony: -1})
	g.board.AddNode(&Node{ID: ParkID, Kind: Park, X: 90, Y: 90, Resource: Twig, Balcony: -1})
}

// wire strings `steps` intermediate nodes between two existing nodes.
func (g *generator) wire(fromID, toID string, steps int) {
	from, to := g.board.Nodes[fromID], g.board.Nodes[toID]
	prev := fromID
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		n := &Node{
			ID:      fmt.Sprintf("wire-%s-%s-%d", fromID, toID, i),
			Kind:    Wire,
			X:       from.X + (to.X-from.X)*t,
			Y:       from.Y + (to.Y-from.Y)*t,
			Balcony: -1,
		}
		if g.rng.Float64() < g.cfg.EventChance {
			n.Kind = Event
		} else if g.rng.Float64() < g.cfg.TwigChance {
			n.Resource = Twig
		}
		g.board.AddNode(n)
		g.board.AddEdge(prev, n.ID)
		prev = n.ID
	}
	g.board.AddEdge(prev, toID)
}

func (g *generator) wires(entries []string) {
	n := len(entries)
	short := g.cfg.WireSteps
	cross := short + 1
	long := short + 2
	diagonal := short + 3

	// Hubs feed the top and bottom rows
	g.wire(DumpsterID, entries[0], short)
	g.wire(DumpsterID, entries[1], long)

	bl := 2 * ((n - 1) / 2)
	if br := bl + 1; br < n {
		g.wire(ParkID, entries[br], short)
		g.wire(ParkID, entries[bl], long)
	} else {
		g.wire(ParkID, entries[bl], short)
		g.wire(ParkID, entries[bl-1], long)
	}

	// Vertical links per column
	for i := 0; i+2 < n; i++ {
		g.wire(entries[i], entries[i+2], short)
	}

	// Zig zag from a left balcony to the right balcony one row down
	for i := 0; i+3 < n; i += 2 {
		g.wire(entries[i], entries[i+3], cross)
	}

	g.wire(entries[bl], entries[1], diagonal)
}

// patrol builds the closed human loop around the building and connects every
// balcony entry to it.
func (g *generator) patrol(entries []string) {
	rows := g.rows()
	middle := rows - 2

	add := func(id string, kind Kind, x, y float64) string {
		n := &Node{ID: id, Kind: kind, X: x, Y: y, Balcony: -1}
		if kind == Road && g.rng.Float64() < g.cfg.CoinChance {
			n.Resource = Coin
		}
		g.board.AddNode(n)
		return id
	}

	ring := []string{
		add(ElevatorTL, Elevator, 5, 5),
		add(RoadTopID, Road, 50, 5),
		add(ElevatorTR, Elevator, 95, 5),
	}
	for r := 1; r <= middle; r++ {
		ring = append(ring, add(roadRight(r), Road, 95, g.rowY(r)))
	}
	ring = append(ring,
		add(ElevatorBR, Elevator, 95, 95),
		add(RoadBottomID, Road, 50, 95),
		add(ElevatorBL, Elevator, 5, 95),
		add(VanID, Van, 5, 88),
	)
	for r := middle; r >= 1; r-- {
		ring = append(ring, add(roadLeft(r), Road, 5, g.rowY(r)))
	}

	for i := range ring {
		g.board.AddEdge(ring[i], ring[(i+1)%len(ring)])
	}

	// Access points from the loop onto each balcony
	for b, entry := range entries {
		row, right := b/2, b%2 == 1
		var access string
		switch {
		case row == 0 && !right:
			access = ElevatorTL
		case row == 0 && right:
			access = ElevatorTR
		case row == rows-1 && !right:
			access = ElevatorBL
		case row == rows-1 && right:
			access = ElevatorBR
		case right:
			access = roadRight(row)
		default:
			access = roadLeft(row)
		}
		g.board.AddEdge(access, entry)
	}
}

func roadRight(row int) string {
	return fmt.Sprintf("road-right-%d", row)
}

func roadLeft(row int) string {
	return fmt.Sprintf("road-left-%d", row)
}
