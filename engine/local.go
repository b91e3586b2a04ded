package engine

import (
	"pigeons/board"
	"pigeons/experiments/metrics"
	"pigeons/game"
	"pigeons/gamemaster"
	"pigeons/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Playout drives one match through the gamemaster with uniformly random legal
// looking inputs. It is a rules soak test, not a player: inputs the rules turn
// down are counted and the loop carries on.
type Playout struct {
	Seed        uint64
	PigeonClass string
	HumanClass  string

	master    *gamemaster.Engine
	chooser   *rand.Rand
	collector metrics.Collector
	maxTurns  int
}

type Option func(*Playout)

func WithRules(r *game.Rules) Option {
	return func(p *Playout) {
		p.master = gamemaster.NewLocalEngine(gamemaster.WithRules(r), gamemaster.WithSeed(p.Seed))
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(p *Playout) {
		p.collector = c
	}
}

func WithMaxTurns(n int) Option {
	return func(p *Playout) {
		p.maxTurns = n
	}
}

func LocalPlayout(seed uint64, pigeonClass, humanClass string, opts ...Option) *Playout {
	p := &Playout{
		Seed:        seed,
		PigeonClass: pigeonClass,
		HumanClass:  humanClass,
		chooser:     rand.New(rand.NewSource(seed ^ 0x9e3779b97f4a7c15)),
		collector:   metrics.NewDummyCollector(),
		maxTurns:    meta.MAX_TURNS,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.master == nil {
		p.master = gamemaster.NewLocalEngine(gamemaster.WithSeed(seed))
	}
	return p
}

// Run executes the whole match. The winner is empty when the turn cap hit first.
func (p *Playout) Run() (string, metrics.MatchMetric) {
	p.collector.Start(p.Seed, p.PigeonClass, p.HumanClass)

	m, err := p.master.StartMatch(p.PigeonClass, p.HumanClass)
	if err != nil {
		panic(err)
	}
	m = p.must(p.master.RollInitiative())
	log.Debug().Msgf("seed %d: %s is starting", p.Seed, m.ActivePlayer().Faction)

	for turns := 0; !m.Over() && turns < p.maxTurns; turns++ {
		m = p.turn(m)
		p.collector.AddTurn()
	}

	winner := ""
	if m.Over() {
		winner = m.Winner.String()
	} else {
		log.Debug().Msgf("seed %d: stopped after %d turns (no winner yet)", p.Seed, p.maxTurns)
	}
	return winner, p.collector.Complete(m)
}

// turn plays roll, move and action for the active player and ends the turn.
func (p *Playout) turn(m *game.Match) *game.Match {
	active := m.Active

	m = p.must(p.master.RollDice())
	if m.Over() || m.Active != active {
		// Nothing was reachable, the roll already passed the turn
		return m
	}

	m = p.move(m)
	m = p.act(m)
	if m.Over() {
		return m
	}
	return p.must(p.master.EndTurn())
}

func (p *Playout) move(m *game.Match) *game.Match {
	me := m.ActivePlayer()
	if me.Faction == board.Human && m.Board.Nodes[me.NodeID].Kind == board.Elevator && p.chooser.Float64() < 0.2 {
		elevators := m.Board.OfKind(board.Elevator)
		target := elevators[p.chooser.Intn(len(elevators))]
		if next, err := p.master.Teleport(target); p.record(err) {
			return next
		}
	}

	reachable := p.master.ReachableNodes()
	if len(reachable) == 0 || p.chooser.Float64() < 0.1 {
		return p.must(p.master.SkipMove())
	}
	return p.must(p.master.MoveTo(reachable[p.chooser.Intn(len(reachable))]))
}

// act tries a few random actions with random nearby targets.
func (p *Playout) act(m *game.Match) *game.Match {
	kinds := game.ActionKinds()
	for attempt := 0; attempt < 3 && !m.Over(); attempt++ {
		me := m.ActivePlayer()
		targets := append([]string{me.NodeID}, m.Board.Nodes[me.NodeID].Edges...)
		kind := kinds[p.chooser.Intn(len(kinds))]
		params := map[string]any{"target": targets[p.chooser.Intn(len(targets))]}

		next, err := p.master.PerformAction(kind.String(), params)
		p.record(err)
		m = next
	}
	return m
}

func (p *Playout) record(err error) bool {
	if err != nil {
		p.collector.AddRejected()
		return false
	}
	p.collector.AddAccepted()
	return true
}

// must is for inputs the loop only sends when they are legal.
func (p *Playout) must(m *game.Match, err error) *game.Match {
	if err != nil {
		panic(err)
	}
	p.collector.AddAccepted()
	return m
}
