package gamemaster

import (
	"errors"
	"fmt"
	"pigeons/board"
	"pigeons/game"
	"pigeons/meta"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrNoMatch = errors.New("no match in progress")

// Input describes one accepted call on the engine.
type Input struct {
	Faction board.Faction
	Op      string
	Target  string
}

type update struct {
	input Input
	state *game.Match
}

// UpdateGetter returns the next unread update without blocking. It returns
// nil, nil when nothing is pending or the match is over and drained.
type UpdateGetter func() (*Input, *game.Match)

// Engine is the single writer for one match at a time. Every method is safe to
// call from any goroutine; states handed out are read-only copies.
type Engine struct {
	mu       sync.Mutex
	rules    *game.Rules
	rng      board.Rand
	match    *game.Match
	updateCh chan update
}

type Option func(*Engine)

func WithRules(r *game.Rules) Option {
	return func(e *Engine) {
		e.rules = r
	}
}

// WithSeed makes board generation, dice and events reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(r board.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

func NewLocalEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules == nil {
		e.rules = game.NewStandardRules()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return e
}

// StartMatch replaces any running match with a fresh one in the Initiative
// phase.
func (e *Engine) StartMatch(pigeonClass, humanClass string) (*game.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := game.NewMatch(e.rules, pigeonClass, humanClass, e.rng)
	if err != nil {
		log.Warn().Err(err).Str("pigeon", pigeonClass).Str("human", humanClass).Msg("match not started")
		return nil, err
	}

	if e.match != nil && !e.match.Over() {
		close(e.updateCh)
	}
	e.match = m
	e.updateCh = make(chan update, meta.UPDATE_BUFFER)

	log.Info().Msgf("match started: %s vs %s on %d nodes", pigeonClass, humanClass, len(m.Board.Nodes))
	return m.Copy(), nil
}

// Updates hands out a getter over the current match's feed. Call it again
// after StartMatch.
func (e *Engine) Updates() UpdateGetter {
	e.mu.Lock()
	ch := e.updateCh
	e.mu.Unlock()

	return func() (*Input, *game.Match) {
		if ch == nil {
			return nil, nil
		}
		select {
		case u, ok := <-ch:
			if !ok {
				return nil, nil
			}
			return &u.input, u.state
		default:
			return nil, nil
		}
	}
}

func (e *Engine) State() *game.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.match == nil {
		return nil
	}
	return e.match.Copy()
}

func (e *Engine) ReachableNodes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.match == nil {
		return nil
	}
	return e.match.ReachableNodes()
}

func (e *Engine) RollInitiative() (*game.Match, error) {
	return e.apply(Input{Op: "rollInitiative"}, func(m *game.Match) error {
		return m.RollInitiative()
	})
}

func (e *Engine) RollDice() (*game.Match, error) {
	return e.apply(Input{Op: "rollDice"}, func(m *game.Match) error {
		return m.RollDice()
	})
}

func (e *Engine) MoveTo(nodeID string) (*game.Match, error) {
	return e.apply(Input{Op: "move", Target: nodeID}, func(m *game.Match) error {
		return m.MoveTo(nodeID)
	})
}

func (e *Engine) Teleport(nodeID string) (*game.Match, error) {
	return e.apply(Input{Op: "teleport", Target: nodeID}, func(m *game.Match) error {
		return m.Teleport(nodeID)
	})
}

func (e *Engine) SkipMove() (*game.Match, error) {
	return e.apply(Input{Op: "skipMove"}, func(m *game.Match) error {
		return m.SkipMove()
	})
}

func (e *Engine) EndTurn() (*game.Match, error) {
	return e.apply(Input{Op: "endTurn"}, func(m *game.Match) error {
		return m.EndTurn()
	})
}

type actionParams struct {
	Target string `mapstructure:"target"`
}

// PerformAction takes the action by its wire name. The only parameter so far
// is "target", the node id for destroy and the directed specials.
func (e *Engine) PerformAction(kind string, params map[string]any) (*game.Match, error) {
	return e.apply(Input{Op: kind}, func(m *game.Match) error {
		k, err := game.ParseActionKind(kind)
		if err != nil {
			return m.Reject(err)
		}

		var p actionParams
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused: true,
			Result:      &p,
		})
		if err != nil {
			return err
		}
		if err := decoder.Decode(params); err != nil {
			return m.Reject(fmt.Errorf("%s params: %w: %w", kind, game.ErrIllegalTarget, err))
		}
		return m.Perform(game.Action{Kind: k, Target: p.Target})
	})
}

// apply runs one transition under the lock, logs the outcome and publishes
// an update for accepted inputs.
func (e *Engine) apply(in Input, fn func(*game.Match) error) (*game.Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.match == nil {
		return nil, ErrNoMatch
	}
	m := e.match
	wasOver := m.Over()
	in.Faction = m.ActivePlayer().Faction
	phase := m.Phase

	if err := fn(m); err != nil {
		log.Warn().Err(err).
			Str("op", in.Op).
			Str("phase", phase.String()).
			Str("faction", in.Faction.String()).
			Str("node", in.Target).
			Msg("input rejected")
		return m.Copy(), err
	}

	log.Debug().
		Str("op", in.Op).
		Str("phase", m.Phase.String()).
		Str("faction", in.Faction.String()).
		Str("node", m.Player(in.Faction).NodeID).
		Msg("input accepted")

	e.publish(in, m)
	if m.Over() && !wasOver {
		log.Info().Msgf("match over after round %d, %s win", m.Round, m.Winner)
		close(e.updateCh)
	}
	return m.Copy(), nil
}

func (e *Engine) publish(in Input, m *game.Match) {
	select {
	case e.updateCh <- update{input: in, state: m.Copy()}:
	default:
		log.Warn().Str("op", in.Op).Msg("update feed full, dropping update")
	}
}
