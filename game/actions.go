package game

import (
	"fmt"
	"pigeons/board"
	"slices"
)

// ActionKind represents the type of action a player can perform.
type ActionKind int

const (
	BuildNest ActionKind = iota + 1
	PlaceProp
	PlaceSpikes
	PlaceStickyTrap
	BuyTool
	Destroy
	Gather
	Special
)

var actionNames = map[ActionKind]string{
	BuildNest:       "buildNest",
	PlaceProp:       "placeProp",
	PlaceSpikes:     "placeSpikes",
	PlaceStickyTrap: "placeStickyTrap",
	BuyTool:         "buyTool",
	Destroy:         "destroy",
	Gather:          "gather",
	Special:         "special",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// ActionKinds lists every action in declaration order.
func ActionKinds() []ActionKind {
	return []ActionKind{BuildNest, PlaceProp, PlaceSpikes, PlaceStickyTrap, BuyTool, Destroy, Gather, Special}
}

func ParseActionKind(name string) (ActionKind, error) {
	for k, n := range actionNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAction)
}

// Action is one Action phase input. Target is a node id for destroy style
// actions; empty means the actor's own node.
type Action struct {
	Kind   ActionKind
	Target string
}

// Perform resolves one action for the active player. A failed action changes
// nothing and does not use up the allowance.
func (m *Match) Perform(a Action) error {
	if err := m.require("act", ActionPhase); err != nil {
		return m.Reject(err)
	}
	p := m.ActivePlayer()
	class := m.class(p)
	if m.ActionsTaken >= class.ActionPoints {
		return m.Reject(fmt.Errorf("%s: no actions left this turn: %w", a.Kind, ErrIllegalTransition))
	}

	placed, err := m.resolve(p, class, a)
	if err != nil {
		return m.Reject(fmt.Errorf("%s: %w", a.Kind, err))
	}

	m.ActionsTaken++
	m.HasActed = true
	if placed {
		m.checkNestWin()
	}
	return nil
}

// resolve validates and applies an action. It reports whether a structure was
// placed so the caller can run the win check.
func (m *Match) resolve(p *Player, class Class, a Action) (bool, error) {
	switch a.Kind {
	case BuildNest:
		return true, m.place(p, board.Nest, board.Pigeon, m.nestCost(p))
	case PlaceProp:
		return true, m.place(p, board.Prop, board.Human, m.Rules.PropCost)
	case PlaceSpikes:
		return true, m.place(p, board.Spikes, board.Human, m.Rules.SpikesCost)
	case PlaceStickyTrap:
		return true, m.place(p, board.StickyTrap, board.Human, m.Rules.TrapCost)
	case BuyTool:
		return false, m.buyTool(p)
	case Destroy:
		return false, m.destroy(p, a.Target)
	case Gather:
		return false, m.gather(p)
	case Special:
		return false, m.special(p, class.Ability, a.Target)
	}
	return false, ErrUnknownAction
}

func (m *Match) place(p *Player, kind board.StructureKind, faction board.Faction, cost Cost) error {
	if p.Faction != faction {
		return fmt.Errorf("%s cannot place a %s: %w", p.Faction, kind, ErrIllegalTarget)
	}
	n := m.Board.Nodes[p.NodeID]
	kinds := m.Rules.PlacementKinds
	if kind == board.Spikes || kind == board.StickyTrap {
		kinds = m.Rules.TrapKinds
	}
	if !slices.Contains(kinds, n.Kind) {
		return fmt.Errorf("cannot place a %s on %s: %w", kind, n.Kind, ErrIllegalTarget)
	}
	if n.Structure != nil {
		return fmt.Errorf("%s already holds a %s: %w", n.ID, n.Structure.Kind, ErrIllegalTarget)
	}
	if m.Opponent(p).NodeID == n.ID {
		return fmt.Errorf("%s is occupied by the %s: %w", n.ID, m.Opponent(p).Faction, ErrIllegalTarget)
	}
	if !p.Inventory.CanAfford(cost) {
		return fmt.Errorf("%s costs %+v: %w", kind, cost, ErrInsufficientResources)
	}

	p.Inventory.Pay(cost)
	n.Structure = &board.Structure{Kind: kind, Owner: p.Faction}
	m.logf(p.Faction, "placed a %s at %s", kind, n.ID)
	return nil
}

func (m *Match) buyTool(p *Player) error {
	if p.Faction != board.Human {
		return fmt.Errorf("pigeons cannot shop: %w", ErrIllegalTarget)
	}
	if m.Board.Nodes[p.NodeID].Kind != board.Van {
		return fmt.Errorf("the vacuum is sold at the van: %w", ErrIllegalTarget)
	}
	if p.Inventory.Tool != nil {
		return fmt.Errorf("already carrying a vacuum: %w", ErrIllegalTarget)
	}
	cost := Cost{Coin: m.Rules.ToolCost}
	if !p.Inventory.CanAfford(cost) {
		return fmt.Errorf("vacuum costs %d coin: %w", cost.Coin, ErrInsufficientResources)
	}

	p.Inventory.Pay(cost)
	p.Inventory.Tool = &Tool{TurnsLeft: m.Rules.ToolDurability}
	m.toolTouched = true
	m.logf(p.Faction, "bought a vacuum good for %d turns", m.Rules.ToolDurability)
	return nil
}

// enemyStructure finds an opposing structure on the actor's node or a
// neighbour of it.
func (m *Match) enemyStructure(p *Player, target string) (*board.Node, error) {
	if target == "" {
		target = p.NodeID
	}
	n := m.Board.Nodes[target]
	if n == nil {
		return nil, fmt.Errorf("unknown node %q: %w", target, ErrIllegalTarget)
	}
	if target != p.NodeID && !m.Board.AreAdjacent(p.NodeID, target) {
		return nil, fmt.Errorf("%s is not next to %s: %w", target, p.NodeID, ErrIllegalTarget)
	}
	if n.Structure == nil || n.Structure.Owner == p.Faction {
		return nil, fmt.Errorf("no enemy structure at %s: %w", target, ErrIllegalTarget)
	}
	return n, nil
}

func (m *Match) destroy(p *Player, target string) error {
	n, err := m.enemyStructure(p, target)
	if err != nil {
		return err
	}

	switch p.Faction {
	case board.Pigeon:
		if !p.Inventory.CanAfford(m.Rules.DestroyCost) {
			return fmt.Errorf("tearing down costs %+v: %w", m.Rules.DestroyCost, ErrInsufficientResources)
		}
		p.Inventory.Pay(m.Rules.DestroyCost)
	case board.Human:
		if p.Inventory.Tool == nil {
			return fmt.Errorf("a nest needs the vacuum: %w", ErrInsufficientResources)
		}
		m.useTool(p)
	}

	m.logf(p.Faction, "destroyed the %s at %s", n.Structure.Kind, n.ID)
	n.Structure = nil
	return nil
}

func (m *Match) gather(p *Player) error {
	n := m.Board.Nodes[p.NodeID]
	if p.Faction != board.Pigeon || !board.IsHub(n.Kind) {
		return fmt.Errorf("nothing to gather at %s: %w", n.ID, ErrIllegalTarget)
	}
	p.Inventory.Add(n.Resource, m.Rules.GatherYield)
	m.logf(p.Faction, "gathered %d %s at %s", m.Rules.GatherYield, n.Resource, n.ID)
	return nil
}

func (m *Match) special(p *Player, ability Ability, target string) error {
	switch ability.Kind {
	case AbilityScavenge:
		p.Inventory.Straw += ability.Amount
		p.Inventory.Twig += ability.Amount
		m.logf(p.Faction, "scavenged %d straw and %d twig", ability.Amount, ability.Amount)
		return nil

	case AbilitySquat:
		n, err := m.enemyStructure(p, target)
		if err != nil {
			return err
		}
		m.logf(p.Faction, "sat on the %s at %s until it broke", n.Structure.Kind, n.ID)
		n.Structure = nil
		return nil

	case AbilityStickSwat:
		n, err := m.enemyStructure(p, target)
		if err != nil {
			return err
		}
		if n.Structure.Kind != board.Nest {
			return fmt.Errorf("the stick only works on nests: %w", ErrIllegalTarget)
		}
		cost := Cost{Coin: ability.Amount}
		if !p.Inventory.CanAfford(cost) {
			return fmt.Errorf("stick swat costs %d coin: %w", cost.Coin, ErrInsufficientResources)
		}
		p.Inventory.Pay(cost)
		m.logf(p.Faction, "swatted the nest at %s", n.ID)
		n.Structure = nil
		return nil

	case AbilityCram:
		p.Inventory.Coin += ability.Amount
		m.logf(p.Faction, "crammed for %d coin", ability.Amount)
		return nil
	}
	return fmt.Errorf("class has no special ability: %w", ErrIllegalTarget)
}
