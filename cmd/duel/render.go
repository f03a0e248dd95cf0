package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	"github.com/KirkDiggler/spell-duel/internal/effects"
	"github.com/KirkDiggler/spell-duel/internal/handlers/api"
	"github.com/KirkDiggler/spell-duel/internal/repositories/history"
)

const barWidth = 20

// CommandKind says what a line of input asks for
type CommandKind int

const (
	CommandAction CommandKind = iota
	CommandQuit
	CommandHistory
	CommandRefresh
)

// Command is one parsed line of input
type Command struct {
	Kind   CommandKind
	Action battle.ActionID
}

// ParseCommand accepts a menu number, an action id or a keyword
func ParseCommand(line string, actions []battle.Action) (Command, bool) {
	input := strings.ToLower(strings.TrimSpace(line))
	switch input {
	case "":
		return Command{}, false
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, true
	case "h", "history":
		return Command{Kind: CommandHistory}, true
	case "s", "state":
		return Command{Kind: CommandRefresh}, true
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(actions) {
			return Command{}, false
		}
		return Command{Kind: CommandAction, Action: actions[n-1].ID}, true
	}

	for _, a := range actions {
		if string(a.ID) == input || strings.ToLower(a.Label) == input {
			return Command{Kind: CommandAction, Action: a.ID}, true
		}
	}
	return Command{}, false
}

// Render draws both combatants, the last message and the turn banner
func Render(snap *api.Snapshot) string {
	var b strings.Builder
	b.WriteString("\n")
	writeCombatant(&b, "You  ", snap.Player)
	writeCombatant(&b, "Enemy", snap.Enemy)
	fmt.Fprintf(&b, "\n%s\n", snap.Message)

	switch {
	case snap.Finished && snap.Winner == battle.SidePlayer:
		b.WriteString("*** Victory! Choose reset to play again. ***\n")
	case snap.Finished:
		b.WriteString("*** Defeat. Choose reset to play again. ***\n")
	case snap.Turn == battle.SideEnemy:
		b.WriteString("Enemy's turn\n")
	default:
		fmt.Fprintf(&b, "Your turn (round %d)\n", snap.Round+1)
	}
	return b.String()
}

// Menu lists the actions available in the current state
func Menu(actions []battle.Action, snap *api.Snapshot) string {
	var b strings.Builder
	for i, a := range actions {
		if snap != nil && snap.Finished && a.ID != battle.ActionReset {
			continue
		}
		fmt.Fprintf(&b, "  %d) %s\n", i+1, a.Label)
	}
	b.WriteString("  [h]istory  [s]tate  [q]uit\n> ")
	return b.String()
}

// RenderHistory lists recent finished battles
func RenderHistory(outcomes []history.Outcome) string {
	if len(outcomes) == 0 {
		return "No finished battles yet\n"
	}
	var b strings.Builder
	for _, o := range outcomes {
		fmt.Fprintf(&b, "  %s  %-6s won in %d rounds (you %d HP, enemy %d HP)\n",
			o.FinishedAt.Format("2006-01-02 15:04"), o.Winner, o.Rounds, o.PlayerHP, o.EnemyHP)
	}
	return b.String()
}

func writeCombatant(b *strings.Builder, name string, c api.CombatantView) {
	fmt.Fprintf(b, "%s [%s] %3d/%d", name, hpBar(c.HP, c.MaxHP), c.HP, c.MaxHP)
	if tags := effectTags(c.Effects); tags != "" {
		fmt.Fprintf(b, "  %s", tags)
	}
	b.WriteString("\n")
}

func hpBar(hp, maxHP int) string {
	filled := 0
	if maxHP > 0 {
		filled = hp * barWidth / maxHP
	}
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}

func effectTags(list []effects.StatusEffect) string {
	tags := make([]string, 0, len(list))
	for _, e := range list {
		tag := fmt.Sprintf("%s+%d", e.Kind, e.Magnitude)
		if e.Duration == effects.DurationTurns {
			tag += fmt.Sprintf("(%d)", e.Remaining)
		}
		tags = append(tags, tag)
	}
	return strings.Join(tags, " ")
}
