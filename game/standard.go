package game

import (
	"pigeons/board"
	"pigeons/meta"
)

func NewStandardRules() *Rules {
	return &Rules{
		MaxRounds:          meta.MAX_ROUNDS,
		WinningNests:       meta.WINNING_NEST_COUNT,
		HumanStartingCoins: meta.HUMAN_STARTING_COINS,
		Stipend:            meta.HUMAN_STIPEND,
		GatherYield:        meta.GATHER_YIELD,
		ElevatorFare:       meta.ELEVATOR_FARE,
		ToolCost:           meta.TOOL_COST,
		ToolDurability:     meta.TOOL_DURABILITY,
		EventGainChance:    0.5,
		EventLossChance:    0.5,

		NestCost:    Cost{Straw: meta.NEST_STRAW_COST, Twig: meta.NEST_TWIG_COST},
		PropCost:    Cost{Coin: meta.PROP_COIN_COST},
		SpikesCost:  Cost{Coin: meta.SPIKES_COIN_COST},
		TrapCost:    Cost{Coin: meta.TRAP_COIN_COST},
		DestroyCost: Cost{Twig: meta.DESTROY_TWIG},

		PlacementKinds: []board.Kind{board.BalconyEntry, board.BalconySlot},
		TrapKinds:      []board.Kind{board.BalconyEntry, board.BalconySlot, board.Event},

		Board: board.DefaultConfig(),
	}
}
