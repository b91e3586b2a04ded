package game

import (
	"fmt"
	"pigeons/board"
)

// collects tells which node resources a faction picks up in passing.
func collects(f board.Faction, r board.Resource) bool {
	switch f {
	case board.Pigeon:
		return r == board.Straw || r == board.Twig
	case board.Human:
		return r == board.Coin
	}
	return false
}

// pickup takes the node's resource. Ordinary tags are one-shot, hub tags stay
// and pay out again on every visit.
func (m *Match) pickup(p *Player, n *board.Node) {
	if n.Resource == board.NoResource || !collects(p.Faction, n.Resource) {
		return
	}
	amount := 1 + m.class(p).PickupBonus
	p.Inventory.Add(n.Resource, amount)
	m.logf(p.Faction, "picked up %d %s at %s", amount, n.Resource, n.ID)
	if !board.IsHub(n.Kind) {
		n.Resource = board.NoResource
	}
}

// resolveEvent draws once per arrival. Events never wear out.
func (m *Match) resolveEvent(p *Player) {
	switch p.Faction {
	case board.Pigeon:
		if m.rng.Float64() < m.Rules.EventGainChance {
			p.Inventory.Straw++
			p.Inventory.Twig++
			m.logf(p.Faction, "event: found a shiny wrapper, +1 straw +1 twig")
			return
		}
		m.logf(p.Faction, "event: nothing happens")
	case board.Human:
		if m.rng.Float64() < m.Rules.EventLossChance && p.Inventory.Coin > 0 {
			p.Inventory.Coin--
			m.logf(p.Faction, "event: dropped a coin off the balcony, -1 coin")
			return
		}
		m.logf(p.Faction, "event: nothing happens")
	}
}

// springTrap stops a pigeon on a sticky trap and uses the trap up.
func (m *Match) springTrap(p *Player, n *board.Node) bool {
	s := n.Structure
	if p.Faction != board.Pigeon || s == nil || s.Kind != board.StickyTrap || s.Owner == p.Faction {
		return false
	}
	n.Structure = nil
	m.logf(p.Faction, "stuck in a sticky trap at %s", n.ID)
	return true
}

// decayTool wears the vacuum down by one for a turn it was carried but not
// bought or used in.
func (m *Match) decayTool(p *Player) {
	tool := p.Inventory.Tool
	if tool == nil || m.toolTouched {
		return
	}
	tool.TurnsLeft--
	if tool.TurnsLeft <= 0 {
		p.Inventory.Tool = nil
		m.logf(p.Faction, "vacuum broke down")
	}
}

// useTool spends one use of the vacuum and drops it when exhausted.
func (m *Match) useTool(p *Player) {
	tool := p.Inventory.Tool
	tool.TurnsLeft--
	m.toolTouched = true
	if tool.TurnsLeft <= 0 {
		p.Inventory.Tool = nil
		m.logf(p.Faction, "vacuum used up")
	}
}

// payIncome is the round wrap stipend. Pigeons live off what they collect.
func (m *Match) payIncome() {
	human := m.Players[HumanIndex]
	amount := m.Rules.Stipend + m.class(human).IncomeBonus
	human.Inventory.Coin += amount
	m.logf(board.Human, "round %d allowance +%d coin", m.Round, amount)
}

// nestCost applies the class discount on straw.
func (m *Match) nestCost(p *Player) Cost {
	c := m.Rules.NestCost
	c.Straw = max(0, c.Straw-m.class(p).NestStrawDiscount)
	return c
}

// checkNestWin ends the match once any balcony holds enough nests.
func (m *Match) checkNestWin() {
	for balcony := 0; balcony < m.Board.Balconies; balcony++ {
		if m.Board.NestCount(balcony) >= m.Rules.WinningNests {
			m.finish(board.Pigeon, fmt.Sprintf("balcony %d has %d nests", balcony, m.Rules.WinningNests))
			return
		}
	}
}
