package game

import (
	"errors"
	"fmt"
	"os"
	"pigeons/board"

	"gopkg.in/yaml.v3"
)

// Cost is a bundle of resources paid in one go.
type Cost struct {
	Straw int `yaml:"straw"`
	Twig  int `yaml:"twig"`
	Coin  int `yaml:"coin"`
}

// Rules holds every tunable number of a match.
type Rules struct {
	MaxRounds          int     `yaml:"max_rounds"`
	WinningNests       int     `yaml:"winning_nests"`
	HumanStartingCoins int     `yaml:"human_starting_coins"`
	Stipend            int     `yaml:"stipend"`
	GatherYield        int     `yaml:"gather_yield"`
	ElevatorFare       int     `yaml:"elevator_fare"`
	ToolCost           int     `yaml:"tool_cost"`
	ToolDurability     int     `yaml:"tool_durability"`
	EventGainChance    float64 `yaml:"event_gain_chance"`
	EventLossChance    float64 `yaml:"event_loss_chance"`

	NestCost    Cost `yaml:"nest_cost"`
	PropCost    Cost `yaml:"prop_cost"`
	SpikesCost  Cost `yaml:"spikes_cost"`
	TrapCost    Cost `yaml:"trap_cost"`
	DestroyCost Cost `yaml:"destroy_cost"`

	// Node kinds accepting nests and props, and the wider set for spikes and traps
	PlacementKinds []board.Kind `yaml:"placement_kinds"`
	TrapKinds      []board.Kind `yaml:"trap_kinds"`

	Board board.Config `yaml:"board"`
}

// LoadRules overlays a YAML file on the standard rules.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	r := NewStandardRules()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse rules %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", path, err)
	}
	return r, nil
}

func (r *Rules) Validate() error {
	if r.MaxRounds < 1 {
		return fmt.Errorf("max_rounds must be positive, got %d", r.MaxRounds)
	}
	if r.WinningNests < 1 {
		return fmt.Errorf("winning_nests must be positive, got %d", r.WinningNests)
	}
	if r.ToolDurability < 1 {
		return fmt.Errorf("tool_durability must be positive, got %d", r.ToolDurability)
	}
	for _, c := range []Cost{r.NestCost, r.PropCost, r.SpikesCost, r.TrapCost, r.DestroyCost} {
		if c.Straw < 0 || c.Twig < 0 || c.Coin < 0 {
			return fmt.Errorf("negative cost %+v", c)
		}
	}
	if r.ToolCost < 0 || r.ElevatorFare < 0 || r.Stipend < 0 || r.GatherYield < 0 {
		return errors.New("prices and yields must not be negative")
	}
	if len(r.PlacementKinds) == 0 {
		return errors.New("placement_kinds must not be empty")
	}
	return r.Board.Validate()
}
