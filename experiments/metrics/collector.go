package metrics

import (
	"pigeons/board"
	"pigeons/game"
	"sync/atomic"
	"time"
)

type MatchMetric struct {
	Seed         uint64
	PigeonClass  string
	HumanClass   string
	StartingSide string
	Winner       string // Empty when the turn cap stopped the match
	Rounds       int
	Turns        int
	Accepted     int
	Rejected     int
	Nests        int
	PigeonStraw  int
	HumanCoin    int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

type Collector interface {
	Start(seed uint64, pigeonClass, humanClass string)
	AddAccepted()
	AddRejected()
	AddTurn()
	Complete(m *game.Match) MatchMetric
}

type collector struct {
	seed        uint64
	pigeonClass string
	humanClass  string
	startTime   time.Time
	accepted    atomic.Int32
	rejected    atomic.Int32
	turns       atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(seed uint64, pigeonClass, humanClass string) {
	c.startTime = time.Now()
	c.seed = seed
	c.pigeonClass = pigeonClass
	c.humanClass = humanClass
}

func (c *collector) AddAccepted() {
	c.accepted.Add(1)
}

func (c *collector) AddRejected() {
	c.rejected.Add(1)
}

func (c *collector) AddTurn() {
	c.turns.Add(1)
}

func (c *collector) Complete(m *game.Match) MatchMetric {
	end := time.Now()
	nests := 0
	for _, n := range m.Board.Nodes {
		if n.Structure != nil && n.Structure.Kind == board.Nest {
			nests++
		}
	}
	winner := ""
	if m.Over() {
		winner = m.Winner.String()
	}
	return MatchMetric{
		Seed:         c.seed,
		PigeonClass:  c.pigeonClass,
		HumanClass:   c.humanClass,
		StartingSide: m.Players[m.First].Faction.String(),
		Winner:       winner,
		Rounds:       m.Round,
		Turns:        int(c.turns.Load()),
		Accepted:     int(c.accepted.Load()),
		Rejected:     int(c.rejected.Load()),
		Nests:        nests,
		PigeonStraw:  m.Players[game.PigeonIndex].Inventory.Straw,
		HumanCoin:    m.Players[game.HumanIndex].Inventory.Coin,
		StartTime:    c.startTime,
		EndTime:      end,
		Duration:     end.Sub(c.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(seed uint64, pigeonClass, humanClass string) {}
func (c *dummyCollector) AddAccepted()                                      {}
func (c *dummyCollector) AddRejected()                                      {}
func (c *dummyCollector) AddTurn()                                          {}
func (c *dummyCollector) Complete(m *game.Match) MatchMetric                { return MatchMetric{} }
