package game

import (
	"fmt"
	"pigeons/board"

	"github.com/google/uuid"
)

type Phase int

const (
	InitiativePhase Phase = iota
	RollPhase
	MovePhase
	ActionPhase
	GameOverPhase
)

func (p Phase) String() string {
	return [...]string{"INITIATIVE", "ROLL", "MOVE", "ACTION", "GAME_OVER"}[p]
}

// Player indices are fixed for a match.
const (
	PigeonIndex = 0
	HumanIndex  = 1
)

// Tool is the decaying vacuum.
type Tool struct {
	TurnsLeft int
}

type Inventory struct {
	Straw int
	Twig  int
	Coin  int
	Tool  *Tool // at most one
}

func (inv Inventory) CanAfford(c Cost) bool {
	return inv.Straw >= c.Straw && inv.Twig >= c.Twig && inv.Coin >= c.Coin
}

func (inv *Inventory) Pay(c Cost) {
	inv.Straw -= c.Straw
	inv.Twig -= c.Twig
	inv.Coin -= c.Coin
}

func (inv *Inventory) Add(r board.Resource, amount int) {
	switch r {
	case board.Straw:
		inv.Straw += amount
	case board.Twig:
		inv.Twig += amount
	case board.Coin:
		inv.Coin += amount
	}
}

type Player struct {
	Faction    board.Faction
	ClassID    string
	Inventory  Inventory
	NodeID     string
	Initiative int
}

type LogEntry struct {
	ID      string
	Round   int
	Faction board.Faction
	Text    string
}

// Match is the dynamic state of one game: the board, both players and the turn
// state. It is owned by whoever created it; hand out Copy() to readers.
type Match struct {
	Board          *board.Board
	Players        [2]*Player // PigeonIndex, HumanIndex
	Rules          *Rules     // Shared, never mutated
	Phase          Phase
	Active         int // Index of the player to act
	First          int // Index of the player opening every round
	Round          int
	DiceRoll       int
	MovesRemaining int
	HasActed       bool
	ActionsTaken   int
	Reachable      []string
	Winner         board.Faction // NoFaction until the match is over
	Log            []LogEntry

	toolTouched bool // vacuum bought or used during the current turn
	rng         board.Rand
}

// NewMatch generates a fresh board and seats both players in the Initiative phase.
func NewMatch(rules *Rules, pigeonClass, humanClass string, rng board.Rand) (*Match, error) {
	pc, err := FindClass(pigeonClass, board.Pigeon)
	if err != nil {
		return nil, err
	}
	hc, err := FindClass(humanClass, board.Human)
	if err != nil {
		return nil, err
	}

	b := board.Generate(rules.Board, rng)
	m := &Match{
		Board: b,
		Players: [2]*Player{
			{
				Faction:   board.Pigeon,
				ClassID:   pc.ID,
				NodeID:    board.EntryID(0),
				Inventory: Inventory{Coin: pc.StartingCoins},
			},
			{
				Faction:   board.Human,
				ClassID:   hc.ID,
				NodeID:    board.ElevatorBR,
				Inventory: Inventory{Coin: rules.HumanStartingCoins + hc.StartingCoins},
			},
		},
		Rules: rules,
		Phase: InitiativePhase,
		Round: 1,
		rng:   rng,
	}
	m.logf(board.NoFaction, "match started: %s vs %s", pc.Name, hc.Name)
	return m, nil
}

// Copy returns a deep copy sharing only Rules. A copy is a read-only snapshot:
// it has no random source and every transition on it is refused.
func (m *Match) Copy() *Match {
	c := *m
	c.rng = nil
	c.Board = m.Board.Copy()
	for i, p := range m.Players {
		pc := *p
		if p.Inventory.Tool != nil {
			t := *p.Inventory.Tool
			pc.Inventory.Tool = &t
		}
		c.Players[i] = &pc
	}
	c.Reachable = append([]string(nil), m.Reachable...)
	c.Log = append([]LogEntry(nil), m.Log...)
	return &c
}

func (m *Match) ActivePlayer() *Player {
	return m.Players[m.Active]
}

func (m *Match) Opponent(p *Player) *Player {
	if p.Faction == board.Pigeon {
		return m.Players[HumanIndex]
	}
	return m.Players[PigeonIndex]
}

func (m *Match) Player(f board.Faction) *Player {
	if f == board.Pigeon {
		return m.Players[PigeonIndex]
	}
	return m.Players[HumanIndex]
}

func (m *Match) class(p *Player) Class {
	c, err := FindClass(p.ClassID, p.Faction)
	if err != nil {
		panic(err)
	}
	return c
}

// Over reports whether the match has reached GameOver.
func (m *Match) Over() bool {
	return m.Phase == GameOverPhase
}

func (m *Match) logf(f board.Faction, format string, args ...any) {
	m.Log = append(m.Log, LogEntry{
		ID:      uuid.NewString(),
		Round:   m.Round,
		Faction: f,
		Text:    fmt.Sprintf(format, args...),
	})
}

// Reject records a refused input in the match log and hands the error back.
// Nothing else changes.
func (m *Match) Reject(err error) error {
	m.logf(m.ActivePlayer().Faction, "rejected: %v", err)
	return err
}

// require checks the phase an operation needs.
func (m *Match) require(op string, phase Phase) error {
	if m.rng == nil {
		return fmt.Errorf("%s on a snapshot: %w", op, ErrIllegalTransition)
	}
	if m.Phase == GameOverPhase {
		return fmt.Errorf("%s: %w: %w", op, ErrIllegalTransition, ErrGameOver)
	}
	if m.Phase != phase {
		return fmt.Errorf("%s during %s phase: %w", op, m.Phase, ErrIllegalTransition)
	}
	return nil
}

func (m *Match) finish(winner board.Faction, reason string) {
	m.Phase = GameOverPhase
	m.Winner = winner
	m.Reachable = nil
	m.logf(winner, "%s win: %s", winner, reason)
}
