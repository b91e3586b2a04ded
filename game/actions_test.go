package game

import (
	"pigeons/board"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerformPhase(t *testing.T) {
	m := newTestMatch(t, "guttersnipe", "uncle")
	err := m.Perform(Action{Kind: Special})
	require.ErrorIs(t, err, ErrIllegalTransition)
	require.Equal(t, 0, m.Players[PigeonIndex].Inventory.Straw)
}

func TestPlaceProp(t *testing.T) {
	t.Run("one coin is not enough", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		target := board.SlotID(1, 1)
		p := readyToAct(m, board.Human, target)
		p.Inventory.Coin = 1
		before := p.Inventory

		err := m.Perform(Action{Kind: PlaceProp})
		require.ErrorIs(t, err, ErrInsufficientResources)
		require.Equal(t, before, p.Inventory)
		require.False(t, m.HasActed)
		require.Equal(t, 0, m.ActionsTaken)
		require.Nil(t, m.Board.Nodes[target].Structure)
		require.Equal(t, ActionPhase, m.Phase)
	})

	t.Run("props go up on balconies", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		target := board.SlotID(1, 1)
		p := readyToAct(m, board.Human, target)

		require.NoError(t, m.Perform(Action{Kind: PlaceProp}))
		require.Equal(t, &board.Structure{Kind: board.Prop, Owner: board.Human}, m.Board.Nodes[target].Structure)
		require.Equal(t, 3, p.Inventory.Coin)
		require.True(t, m.HasActed)
		require.Equal(t, 1, m.ActionsTaken)
		require.Equal(t, ActionPhase, m.Phase, "acting does not end the turn")

		err := m.Perform(Action{Kind: Special})
		require.ErrorIs(t, err, ErrIllegalTransition, "uncle gets a single action")
		require.Equal(t, 3, p.Inventory.Coin)
	})
}

func TestActionAllowance(t *testing.T) {
	m := newTestMatch(t, "guttersnipe", "student")
	p := readyToAct(m, board.Human, board.SlotID(3, 1))

	require.NoError(t, m.Perform(Action{Kind: PlaceProp}))
	require.NoError(t, m.Perform(Action{Kind: Special}))
	require.Equal(t, 8-2+2, p.Inventory.Coin)
	require.ErrorIs(t, m.Perform(Action{Kind: Special}), ErrIllegalTransition)
	require.Equal(t, 2, m.ActionsTaken)

	require.NoError(t, m.EndTurn())
	require.Equal(t, 0, m.ActionsTaken)
}

func TestBuildNest(t *testing.T) {
	t.Run("costs two straw and a twig", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		target := board.SlotID(0, 1)
		p := readyToAct(m, board.Pigeon, target)
		p.Inventory.Straw, p.Inventory.Twig = 2, 1

		require.NoError(t, m.Perform(Action{Kind: BuildNest}))
		require.Equal(t, board.Nest, m.Board.Nodes[target].Structure.Kind)
		require.Equal(t, board.Pigeon, m.Board.Nodes[target].Structure.Owner)
		require.Equal(t, Inventory{}, p.Inventory)
		require.Equal(t, 1, m.Board.NestCount(0))
	})

	t.Run("chonk saves a straw", func(t *testing.T) {
		m := newTestMatch(t, "chonk", "uncle")
		p := readyToAct(m, board.Pigeon, board.SlotID(0, 1))
		p.Inventory.Straw, p.Inventory.Twig = 1, 1

		require.NoError(t, m.Perform(Action{Kind: BuildNest}))
		require.Equal(t, Inventory{}, p.Inventory)
	})

	t.Run("short on straw", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		p := readyToAct(m, board.Pigeon, board.SlotID(0, 1))
		p.Inventory.Straw, p.Inventory.Twig = 1, 5

		require.ErrorIs(t, m.Perform(Action{Kind: BuildNest}), ErrInsufficientResources)
		require.Equal(t, 5, p.Inventory.Twig)
	})
}

func TestPlacementRejections(t *testing.T) {
	rich := func(p *Player) {
		p.Inventory = Inventory{Straw: 10, Twig: 10, Coin: 10}
	}

	t.Run("wrong faction", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		rich(readyToAct(m, board.Pigeon, board.SlotID(0, 1)))
		require.ErrorIs(t, m.Perform(Action{Kind: PlaceProp}), ErrIllegalTarget)

		rich(readyToAct(m, board.Human, board.SlotID(2, 1)))
		require.ErrorIs(t, m.Perform(Action{Kind: BuildNest}), ErrIllegalTarget)
	})

	t.Run("nests only on balconies", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		rich(readyToAct(m, board.Pigeon, nearWire))
		require.ErrorIs(t, m.Perform(Action{Kind: BuildNest}), ErrIllegalTarget)

		rich(readyToAct(m, board.Pigeon, board.DumpsterID))
		require.ErrorIs(t, m.Perform(Action{Kind: BuildNest}), ErrIllegalTarget)
	})

	t.Run("one structure per node", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		target := board.SlotID(0, 2)
		m.Board.Nodes[target].Structure = &board.Structure{Kind: board.Prop, Owner: board.Human}
		rich(readyToAct(m, board.Pigeon, target))
		require.ErrorIs(t, m.Perform(Action{Kind: BuildNest}), ErrIllegalTarget)
		require.Equal(t, board.Prop, m.Board.Nodes[target].Structure.Kind)
	})

	t.Run("not under the opponent's feet", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		target := board.SlotID(4, 1)
		m.Players[HumanIndex].NodeID = target
		rich(readyToAct(m, board.Pigeon, target))
		require.ErrorIs(t, m.Perform(Action{Kind: BuildNest}), ErrIllegalTarget)
	})

	t.Run("spikes and traps also fit on event nodes", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		m.Board.Nodes[nearWire].Kind = board.Event
		p := readyToAct(m, board.Human, nearWire)
		rich(p)

		require.NoError(t, m.Perform(Action{Kind: PlaceSpikes}))
		require.Equal(t, board.Spikes, m.Board.Nodes[nearWire].Structure.Kind)
		require.Equal(t, 7, p.Inventory.Coin)

		rich(readyToAct(m, board.Human, board.RoadTopID))
		m.ActionsTaken = 0
		require.ErrorIs(t, m.Perform(Action{Kind: PlaceStickyTrap}), ErrIllegalTarget)
	})
}

func TestNestWin(t *testing.T) {
	m := newTestMatch(t, "guttersnipe", "uncle")
	for _, id := range []string{board.SlotID(1, 1), board.SlotID(1, 2)} {
		m.Board.Nodes[id].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
	}
	m.Board.Nodes[board.SlotID(0, 1)].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
	p := readyToAct(m, board.Pigeon, board.SlotID(1, 3))
	p.Inventory.Straw, p.Inventory.Twig = 2, 1

	require.NoError(t, m.Perform(Action{Kind: BuildNest}))
	require.Equal(t, 3, m.Board.NestCount(1))
	require.Equal(t, GameOverPhase, m.Phase)
	require.Equal(t, board.Pigeon, m.Winner)
	require.True(t, m.Over())

	require.ErrorIs(t, m.EndTurn(), ErrGameOver)
	require.ErrorIs(t, m.Perform(Action{Kind: Special}), ErrGameOver)
}

func TestNestWinOnTheLastRound(t *testing.T) {
	m := newTestMatch(t, "guttersnipe", "uncle")
	m.Round = m.Rules.MaxRounds
	m.First = HumanIndex
	for _, id := range []string{board.SlotID(2, 1), board.SlotID(2, 2)} {
		m.Board.Nodes[id].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
	}
	p := readyToAct(m, board.Pigeon, board.SlotID(2, 3))
	p.Inventory.Straw, p.Inventory.Twig = 2, 1

	require.NoError(t, m.Perform(Action{Kind: BuildNest}))
	require.Equal(t, GameOverPhase, m.Phase)
	require.Equal(t, board.Pigeon, m.Winner)

	require.ErrorIs(t, m.EndTurn(), ErrGameOver)
	require.Equal(t, board.Pigeon, m.Winner, "the round limit never gets a say")
	require.Equal(t, m.Rules.MaxRounds, m.Round)
}

func TestNestsSpreadOutDoNotWin(t *testing.T) {
	m := newTestMatch(t, "guttersnipe", "uncle")
	m.Board.Nodes[board.SlotID(1, 1)].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
	m.Board.Nodes[board.SlotID(2, 1)].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
	p := readyToAct(m, board.Pigeon, board.SlotID(3, 1))
	p.Inventory.Straw, p.Inventory.Twig = 2, 1

	require.NoError(t, m.Perform(Action{Kind: BuildNest}))
	require.Equal(t, ActionPhase, m.Phase)
	require.Equal(t, board.NoFaction, m.Winner)
}

func TestVacuum(t *testing.T) {
	t.Run("buy at the van", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		p := readyToAct(m, board.Human, board.VanID)

		require.NoError(t, m.Perform(Action{Kind: BuyTool}))
		require.Equal(t, 0, p.Inventory.Coin)
		require.Equal(t, &Tool{TurnsLeft: 3}, p.Inventory.Tool)
	})

	t.Run("buy rejections", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "student")
		p := readyToAct(m, board.Human, board.RoadTopID)
		require.ErrorIs(t, m.Perform(Action{Kind: BuyTool}), ErrIllegalTarget)

		p.NodeID = board.VanID
		p.Inventory.Coin = 4
		require.ErrorIs(t, m.Perform(Action{Kind: BuyTool}), ErrInsufficientResources)

		p.Inventory.Coin = 10
		p.Inventory.Tool = &Tool{TurnsLeft: 1}
		require.ErrorIs(t, m.Perform(Action{Kind: BuyTool}), ErrIllegalTarget)
		require.Equal(t, 10, p.Inventory.Coin)

		pigeon := readyToAct(m, board.Pigeon, board.VanID)
		pigeon.Inventory.Coin = 10
		require.ErrorIs(t, m.Perform(Action{Kind: BuyTool}), ErrIllegalTarget)
	})

	t.Run("a one turn vacuum clears one nest", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "student")
		first, second := board.SlotID(2, 1), board.SlotID(2, 2)
		for _, id := range []string{first, second} {
			m.Board.Nodes[id].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
		}
		p := readyToAct(m, board.Human, first)
		p.Inventory.Tool = &Tool{TurnsLeft: 1}

		require.NoError(t, m.Perform(Action{Kind: Destroy}))
		require.Nil(t, m.Board.Nodes[first].Structure)
		require.Nil(t, p.Inventory.Tool)

		err := m.Perform(Action{Kind: Destroy, Target: second})
		require.ErrorIs(t, err, ErrInsufficientResources)
		require.NotNil(t, m.Board.Nodes[second].Structure)
		require.Equal(t, 1, m.ActionsTaken)
	})

	t.Run("a used vacuum skips decay", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		target := board.SlotID(2, 1)
		m.Board.Nodes[target].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
		p := readyToAct(m, board.Human, board.EntryID(2))
		p.Inventory.Tool = &Tool{TurnsLeft: 3}

		require.NoError(t, m.Perform(Action{Kind: Destroy, Target: target}))
		require.NoError(t, m.EndTurn())
		require.Equal(t, 2, p.Inventory.Tool.TurnsLeft)
	})
}

func TestPigeonDestroy(t *testing.T) {
	setup := func(t *testing.T) (*Match, *Player, string) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		target := board.SlotID(0, 1)
		m.Board.Nodes[target].Structure = &board.Structure{Kind: board.Prop, Owner: board.Human}
		return m, readyToAct(m, board.Pigeon, entry0), target
	}

	t.Run("a twig pecks a prop apart", func(t *testing.T) {
		m, p, target := setup(t)
		p.Inventory.Twig = 1
		require.NoError(t, m.Perform(Action{Kind: Destroy, Target: target}))
		require.Nil(t, m.Board.Nodes[target].Structure)
		require.Equal(t, 0, p.Inventory.Twig)
	})

	t.Run("no twig", func(t *testing.T) {
		m, _, target := setup(t)
		require.ErrorIs(t, m.Perform(Action{Kind: Destroy, Target: target}), ErrInsufficientResources)
		require.NotNil(t, m.Board.Nodes[target].Structure)
	})

	t.Run("out of reach or friendly", func(t *testing.T) {
		m, p, _ := setup(t)
		p.Inventory.Twig = 5
		far := board.SlotID(0, 2)
		m.Board.Nodes[far].Structure = &board.Structure{Kind: board.Prop, Owner: board.Human}
		require.ErrorIs(t, m.Perform(Action{Kind: Destroy, Target: far}), ErrIllegalTarget)
		require.ErrorIs(t, m.Perform(Action{Kind: Destroy, Target: "nowhere"}), ErrIllegalTarget)

		own := board.SlotID(0, 3)
		m.Board.Nodes[own].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
		require.ErrorIs(t, m.Perform(Action{Kind: Destroy, Target: own}), ErrIllegalTarget)
		require.Equal(t, 5, p.Inventory.Twig)
	})
}

func TestGather(t *testing.T) {
	m := newTestMatch(t, "guttersnipe", "uncle")
	p := readyToAct(m, board.Pigeon, board.DumpsterID)
	require.NoError(t, m.Perform(Action{Kind: Gather}))
	require.Equal(t, 2, p.Inventory.Straw)
	require.Equal(t, board.Straw, m.Board.Nodes[board.DumpsterID].Resource)

	m.ActionsTaken = 0
	p.NodeID = board.ParkID
	require.NoError(t, m.Perform(Action{Kind: Gather}))
	require.Equal(t, 2, p.Inventory.Twig)

	m.ActionsTaken = 0
	p.NodeID = entry0
	require.ErrorIs(t, m.Perform(Action{Kind: Gather}), ErrIllegalTarget)

	readyToAct(m, board.Human, board.DumpsterID)
	require.ErrorIs(t, m.Perform(Action{Kind: Gather}), ErrIllegalTarget)
}

func TestSpecials(t *testing.T) {
	t.Run("guttersnipe scavenges", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		p := readyToAct(m, board.Pigeon, nearWire)
		require.NoError(t, m.Perform(Action{Kind: Special}))
		require.Equal(t, 1, p.Inventory.Straw)
		require.Equal(t, 1, p.Inventory.Twig)
	})

	t.Run("chonk squats on a prop", func(t *testing.T) {
		m := newTestMatch(t, "chonk", "uncle")
		target := board.SlotID(0, 1)
		m.Board.Nodes[target].Structure = &board.Structure{Kind: board.Spikes, Owner: board.Human}
		p := readyToAct(m, board.Pigeon, entry0)
		require.NoError(t, m.Perform(Action{Kind: Special, Target: target}))
		require.Nil(t, m.Board.Nodes[target].Structure)
		require.Equal(t, Inventory{}, p.Inventory)
	})

	t.Run("uncle swats nests only", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "uncle")
		nest, other := board.SlotID(0, 1), board.SlotID(0, 3)
		m.Board.Nodes[nest].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
		m.Board.Nodes[other].Structure = &board.Structure{Kind: board.Nest, Owner: board.Pigeon}
		p := readyToAct(m, board.Human, entry0)
		m.Players[PigeonIndex].NodeID = board.DumpsterID

		require.NoError(t, m.Perform(Action{Kind: Special, Target: nest}))
		require.Nil(t, m.Board.Nodes[nest].Structure)
		require.Equal(t, 2, p.Inventory.Coin)

		m.ActionsTaken = 0
		require.ErrorIs(t, m.Perform(Action{Kind: Special, Target: other}), ErrInsufficientResources)

		m.ActionsTaken = 0
		p.Inventory.Coin = 10
		m.Board.Nodes[other].Structure = &board.Structure{Kind: board.Spikes, Owner: board.Pigeon}
		require.ErrorIs(t, m.Perform(Action{Kind: Special, Target: other}), ErrIllegalTarget)
	})

	t.Run("student crams", func(t *testing.T) {
		m := newTestMatch(t, "guttersnipe", "student")
		p := readyToAct(m, board.Human, board.RoadTopID)
		require.NoError(t, m.Perform(Action{Kind: Special}))
		require.Equal(t, 10, p.Inventory.Coin)
	})
}

func TestActionKinds(t *testing.T) {
	m := newTestMatch(t, "guttersnipe", "uncle")
	readyToAct(m, board.Pigeon, entry0)
	require.ErrorIs(t, m.Perform(Action{Kind: ActionKind(99)}), ErrUnknownAction)
	require.Equal(t, 0, m.ActionsTaken)

	for _, k := range ActionKinds() {
		parsed, err := ParseActionKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, parsed)
	}
	_, err := ParseActionKind("fly")
	require.ErrorIs(t, err, ErrUnknownAction)
	require.Equal(t, "ActionKind(99)", ActionKind(99).String())
}
