package game

import (
	"fmt"
	"pigeons/board"
	"slices"
)

func (m *Match) rollDie() int {
	return m.rng.Intn(6) + 1
}

// RollInitiative rolls for both players until the rolls differ. The higher
// roll opens every round.
func (m *Match) RollInitiative() error {
	if err := m.require("roll initiative", InitiativePhase); err != nil {
		return m.Reject(err)
	}

	pigeon, human := m.Players[PigeonIndex], m.Players[HumanIndex]
	for {
		pigeon.Initiative = m.rollDie()
		human.Initiative = m.rollDie()
		if pigeon.Initiative != human.Initiative {
			break
		}
		m.logf(board.NoFaction, "initiative tie at %d, rolling again", pigeon.Initiative)
	}

	m.First = PigeonIndex
	if human.Initiative > pigeon.Initiative {
		m.First = HumanIndex
	}
	m.Active = m.First
	m.Phase = RollPhase
	m.logf(m.ActivePlayer().Faction, "initiative %d to %d, %s goes first",
		pigeon.Initiative, human.Initiative, m.ActivePlayer().Faction)
	return nil
}

// RollDice rolls the movement die for the active player. A roll that reaches
// nothing ends the turn on the spot.
func (m *Match) RollDice() error {
	if err := m.require("roll dice", RollPhase); err != nil {
		return m.Reject(err)
	}

	p := m.ActivePlayer()
	class := m.class(p)
	raw := m.rollDie()
	m.DiceRoll = max(1, raw+class.SpeedModifier)

	reachable := board.ReachableSet(m.Board, p.NodeID, m.DiceRoll, p.Faction)
	if len(reachable) == 0 {
		m.logf(p.Faction, "rolled %d (%d raw), no legal moves", m.DiceRoll, raw)
		m.endTurn()
		return nil
	}

	m.MovesRemaining = m.DiceRoll
	m.Reachable = reachable
	m.Phase = MovePhase
	m.logf(p.Faction, "rolled %d (%d raw), %d destinations", m.DiceRoll, raw, len(reachable))
	return nil
}

// ReachableNodes is the destination list for the pending move.
func (m *Match) ReachableNodes() []string {
	if m.Phase != MovePhase {
		return nil
	}
	return slices.Clone(m.Reachable)
}

// MoveTo walks the active player to a destination from the rolled reachable
// set, resolving pickups, events and traps on every node entered.
func (m *Match) MoveTo(nodeID string) error {
	if err := m.require("move", MovePhase); err != nil {
		return m.Reject(err)
	}
	if !slices.Contains(m.Reachable, nodeID) {
		return m.Reject(fmt.Errorf("%s is not reachable with %d: %w", nodeID, m.DiceRoll, ErrIllegalTarget))
	}

	p := m.ActivePlayer()
	path := board.ShortestPath(m.Board, p.NodeID, nodeID, p.Faction)
	if len(path) == 0 {
		return m.Reject(fmt.Errorf("no path from %s to %s: %w", p.NodeID, nodeID, ErrIllegalTarget))
	}

	stop := m.walk(p, path[1:])
	m.logf(p.Faction, "moved to %s", stop)
	m.finishMove()
	return nil
}

// Teleport lets a human on an elevator ride to any other elevator for a fare,
// ignoring the rolled distance.
func (m *Match) Teleport(nodeID string) error {
	if err := m.require("teleport", MovePhase); err != nil {
		return m.Reject(err)
	}
	p := m.ActivePlayer()
	if p.Faction != board.Human {
		return m.Reject(fmt.Errorf("only humans ride elevators: %w", ErrIllegalTarget))
	}
	if m.Board.Nodes[p.NodeID].Kind != board.Elevator {
		return m.Reject(fmt.Errorf("not standing on an elevator: %w", ErrIllegalTarget))
	}
	target := m.Board.Nodes[nodeID]
	if target == nil || target.Kind != board.Elevator || target.ID == p.NodeID {
		return m.Reject(fmt.Errorf("%s is not another elevator: %w", nodeID, ErrIllegalTarget))
	}
	fare := Cost{Coin: m.Rules.ElevatorFare}
	if !p.Inventory.CanAfford(fare) {
		return m.Reject(fmt.Errorf("elevator fare %d: %w", fare.Coin, ErrInsufficientResources))
	}

	p.Inventory.Pay(fare)
	m.walk(p, []string{nodeID})
	m.logf(p.Faction, "took the elevator to %s", nodeID)
	m.finishMove()
	return nil
}

// SkipMove gives up the rolled movement and goes straight to the action.
func (m *Match) SkipMove() error {
	if err := m.require("skip move", MovePhase); err != nil {
		return m.Reject(err)
	}
	m.logf(m.ActivePlayer().Faction, "stayed at %s", m.ActivePlayer().NodeID)
	m.finishMove()
	return nil
}

func (m *Match) finishMove() {
	m.MovesRemaining = 0
	m.Reachable = nil
	m.Phase = ActionPhase
}

// walk enters each node of the path in order and returns where the player
// stopped. A sticky trap ends the walk early.
func (m *Match) walk(p *Player, path []string) string {
	for _, id := range path {
		n := m.Board.Nodes[id]
		p.NodeID = id
		m.pickup(p, n)
		if n.Kind == board.Event {
			m.resolveEvent(p)
		}
		if m.springTrap(p, n) {
			break
		}
	}
	return p.NodeID
}

// EndTurn hands the turn to the other player.
func (m *Match) EndTurn() error {
	if err := m.require("end turn", ActionPhase); err != nil {
		return m.Reject(err)
	}
	m.endTurn()
	return nil
}

func (m *Match) endTurn() {
	p := m.ActivePlayer()
	m.decayTool(p)
	m.logf(p.Faction, "turn over")

	m.Active = 1 - m.Active
	if m.Active == m.First {
		m.Round++
		m.payIncome()
	}

	m.DiceRoll = 0
	m.MovesRemaining = 0
	m.HasActed = false
	m.ActionsTaken = 0
	m.Reachable = nil
	m.toolTouched = false

	if m.Round > m.Rules.MaxRounds {
		m.finish(board.Human, fmt.Sprintf("the balconies held for %d rounds", m.Rules.MaxRounds))
		return
	}
	m.Phase = RollPhase
}
