package game

import (
	"fmt"
	"pigeons/board"
)

// AbilityKind tags a class special. Passive effects live in the numeric
// modifiers of Class; the ability is what the "special" action does.
type AbilityKind int

const (
	AbilityNone AbilityKind = iota
	AbilityScavenge         // gain Amount straw and Amount twig anywhere
	AbilitySquat            // remove an adjacent enemy structure for free
	AbilityStickSwat        // knock down an adjacent nest for Amount coins, no vacuum needed
	AbilityCram             // gain Amount coins
)

type Ability struct {
	Kind   AbilityKind
	Amount int
}

// Class is a stat profile picked at match start.
type Class struct {
	ID                string
	Name              string
	Faction           board.Faction
	SpeedModifier     int
	NestStrawDiscount int
	IncomeBonus       int
	PickupBonus       int
	StartingCoins     int
	ActionPoints      int
	Ability           Ability
}

var Classes = []Class{
	{
		ID:            "guttersnipe",
		Name:          "The Guttersnipe",
		Faction:       board.Pigeon,
		SpeedModifier: 1,
		ActionPoints:  1,
		Ability:       Ability{Kind: AbilityScavenge, Amount: 1},
	},
	{
		ID:                "chonk",
		Name:              "The Chonk",
		Faction:           board.Pigeon,
		SpeedModifier:     -1,
		NestStrawDiscount: 1,
		ActionPoints:      1,
		Ability:           Ability{Kind: AbilitySquat},
	},
	{
		ID:           "uncle",
		Name:         "Morning Walk Uncle",
		Faction:      board.Human,
		IncomeBonus:  1,
		ActionPoints: 1,
		Ability:      Ability{Kind: AbilityStickSwat, Amount: 3},
	},
	{
		ID:            "student",
		Name:          "Stressed Student",
		Faction:       board.Human,
		SpeedModifier: 1,
		PickupBonus:   1,
		StartingCoins: 3,
		ActionPoints:  2,
		Ability:       Ability{Kind: AbilityCram, Amount: 2},
	},
}

// FindClass looks a class up by id and checks it belongs to the faction.
func FindClass(id string, faction board.Faction) (Class, error) {
	for _, c := range Classes {
		if c.ID != id {
			continue
		}
		if c.Faction != faction {
			return Class{}, fmt.Errorf("class %q is not a %s class: %w", id, faction, ErrUnknownClass)
		}
		return c, nil
	}
	return Class{}, fmt.Errorf("class %q: %w", id, ErrUnknownClass)
}
