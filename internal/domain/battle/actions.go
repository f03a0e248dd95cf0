package battle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActionID names an entry in the action catalog
type ActionID string

// Player actions
const (
	ActionHeal        ActionID = "heal"
	ActionDmgBoost    ActionID = "dmg_boost"
	ActionCritBoost   ActionID = "crit_boost"
	ActionDefBoost    ActionID = "def_boost"
	ActionPunch       ActionID = "punch"
	ActionSpearThrow  ActionID = "spear_throw"
	ActionTornado     ActionID = "tornado"
	ActionShieldBlock ActionID = "shield_block"
	ActionReset       ActionID = "reset"
)

// Enemy actions
const (
	EnemyAttack      ActionID = "attack"
	EnemyHeavyStrike ActionID = "heavy_strike"
	EnemyBrace       ActionID = "brace"
)

// Class groups actions by what they touch
type Class string

const (
	ClassSupport Class = "support" // Mutates the actor only
	ClassOffense Class = "offense" // Damages the opponent
	ClassDefense Class = "defense" // Reduces incoming damage
	ClassControl Class = "control" // Session control, never takes a turn
)

// Action is a catalog entry
type Action struct {
	ID    ActionID `json:"id"`
	Label string   `json:"label"`
	Class Class    `json:"class"`
}

var labelOverrides = map[ActionID]string{
	ActionDmgBoost:   "Damage Boost",
	ActionDefBoost:   "Defense Boost",
	EnemyHeavyStrike: "Heavy Strike",
}

func label(id ActionID) string {
	if l, ok := labelOverrides[id]; ok {
		return l
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(id), "_", " "))
}

func newAction(id ActionID, class Class) Action {
	return Action{ID: id, Label: label(id), Class: class}
}

var playerCatalog = []Action{
	newAction(ActionHeal, ClassSupport),
	newAction(ActionDmgBoost, ClassSupport),
	newAction(ActionCritBoost, ClassSupport),
	newAction(ActionDefBoost, ClassSupport),
	newAction(ActionPunch, ClassOffense),
	newAction(ActionSpearThrow, ClassOffense),
	newAction(ActionTornado, ClassOffense),
	newAction(ActionShieldBlock, ClassDefense),
	newAction(ActionReset, ClassControl),
}

var enemyCatalog = []Action{
	newAction(EnemyAttack, ClassOffense),
	newAction(EnemyHeavyStrike, ClassOffense),
	newAction(EnemyBrace, ClassDefense),
}

// Catalog returns the player action catalog in display order
func Catalog() []Action {
	out := make([]Action, len(playerCatalog))
	copy(out, playerCatalog)
	return out
}

// EnemyCatalog returns the actions an enemy policy may choose from
func EnemyCatalog() []Action {
	out := make([]Action, len(enemyCatalog))
	copy(out, enemyCatalog)
	return out
}

// LookupAction finds a player action by id
func LookupAction(id ActionID) (Action, bool) {
	for _, a := range playerCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
