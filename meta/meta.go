// meta/meta.go
package meta

// MAX_ROUNDS is the round after which the humans win by holding out.
const MAX_ROUNDS = 20

// WINNING_NEST_COUNT is the number of nests on one balcony that wins for the pigeons.
const WINNING_NEST_COUNT = 3

// TOOL_COST is the vacuum price at the van.
const TOOL_COST = 5

// TOOL_DURABILITY is the number of turns a fresh vacuum lasts.
const TOOL_DURABILITY = 3

const HUMAN_STARTING_COINS = 5

// HUMAN_STIPEND is paid to the human every time turn order wraps.
const HUMAN_STIPEND = 2

const GATHER_YIELD = 2

const ELEVATOR_FARE = 1

// Structure prices
const (
	NEST_STRAW_COST  = 2
	NEST_TWIG_COST   = 1
	PROP_COIN_COST   = 2
	SPIKES_COIN_COST = 3
	TRAP_COIN_COST   = 2
	DESTROY_TWIG     = 1
)

// Board shape
const (
	BALCONIES    = 6
	WIRE_STEPS   = 2
	EVENT_CHANCE = 0.2
	COIN_CHANCE  = 0.4
	TWIG_CHANCE  = 0.15
)

// MAX_TURNS caps a playout so a stalled match cannot loop forever.
const MAX_TURNS = 300

// UPDATE_BUFFER is how many unread updates a local engine keeps before dropping.
const UPDATE_BUFFER = 64
