package game

import (
	"pigeons/board"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scriptedRand replays fixed die faces and event draws.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		panic("out of scripted rolls")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// dice scripts die faces 1..6.
func dice(faces ...int) *scriptedRand {
	r := &scriptedRand{}
	for _, f := range faces {
		r.ints = append(r.ints, f-1)
	}
	return r
}

// Node ids on the undecorated standard board.
var (
	entry0   = board.EntryID(0)
	nearWire = "wire-dumpster-balcony-0-entry-2" // next to entry0
	farWire  = "wire-dumpster-balcony-0-entry-1" // next to the dumpster
)

func cleanRules() *Rules {
	r := NewStandardRules()
	r.Board.EventChance, r.Board.CoinChance, r.Board.TwigChance = 0, 0, 0
	return r
}

// newTestMatch skips initiative: the pigeon opens every round.
func newTestMatch(t *testing.T, pigeonClass, humanClass string) *Match {
	t.Helper()
	m, err := NewMatch(cleanRules(), pigeonClass, humanClass, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	m.Phase = RollPhase
	m.First = PigeonIndex
	m.Active = PigeonIndex
	m.rng = dice()
	return m
}

// readyToMove fakes a roll of budget for the active player.
func readyToMove(m *Match, budget int) {
	p := m.ActivePlayer()
	m.Phase = MovePhase
	m.DiceRoll = budget
	m.MovesRemaining = budget
	m.Reachable = board.ReachableSet(m.Board, p.NodeID, budget, p.Faction)
}

// readyToAct puts the given faction in its Action phase at node.
func readyToAct(m *Match, f board.Faction, node string) *Player {
	m.Active = PigeonIndex
	if f == board.Human {
		m.Active = HumanIndex
	}
	m.Phase = ActionPhase
	p := m.ActivePlayer()
	p.NodeID = node
	return p
}
