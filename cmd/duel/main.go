// Command duel plays a battle against the server from a terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/spell-duel/internal/clients/battleapi"
	"github.com/KirkDiggler/spell-duel/internal/config"
	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	"github.com/KirkDiggler/spell-duel/internal/handlers/api"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sessionID := flag.String("session", "", "session id to join (defaults to the server's default session)")
	fresh := flag.Bool("new", false, "start a new private session")
	flag.Parse()

	ctx := context.Background()

	client, err := battleapi.New(&battleapi.Config{
		BaseURL:   cfg.Client.APIURL,
		SessionID: *sessionID,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	if *fresh {
		created, createErr := client.CreateSession(ctx)
		if createErr != nil {
			log.Fatalf("Failed to create session: %v", createErr)
		}
		fmt.Printf("Started session %s\n", created.SessionID)
		client, err = battleapi.New(&battleapi.Config{
			BaseURL:   cfg.Client.APIURL,
			SessionID: created.SessionID,
		})
		if err != nil {
			log.Fatalf("Failed to create client: %v", err)
		}
	}

	actions, err := client.Actions(ctx)
	if err != nil {
		log.Fatalf("Failed to load actions: %v", err)
	}

	snap, err := client.State(ctx)
	if err != nil {
		log.Fatalf("Failed to load battle: %v", err)
	}

	d := &duel{
		client:  client,
		actions: actions,
		delay:   cfg.Client.EnemyDelay,
		out:     os.Stdout,
	}
	d.show(snap)
	// The session may have been left waiting on the enemy
	if d.settle(ctx) {
		d.prompt()
	}

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for line := range lines {
		if !d.handle(ctx, line) {
			return
		}
		// Input typed while a request was in flight is stale
		if dropped, open := drain(lines); dropped > 0 {
			fmt.Fprintf(d.out, "(ignored %d input(s) sent while busy)\n", dropped)
			if !open {
				return
			}
		}
		d.prompt()
	}
}

type duel struct {
	client  battleapi.Client
	actions []battle.Action
	delay   time.Duration
	out     io.Writer
	last    *api.Snapshot
}

func (d *duel) show(snap *api.Snapshot) {
	d.last = snap
	fmt.Fprint(d.out, Render(snap))
	d.prompt()
}

func (d *duel) prompt() {
	fmt.Fprint(d.out, Menu(d.actions, d.last))
}

// handle runs one command and returns false when the user quits
func (d *duel) handle(ctx context.Context, line string) bool {
	cmd, ok := ParseCommand(line, d.actions)
	if !ok {
		fmt.Fprintf(d.out, "Unknown command %q\n", line)
		return true
	}

	switch cmd.Kind {
	case CommandQuit:
		return false
	case CommandHistory:
		outcomes, err := d.client.History(ctx, 10)
		if err != nil {
			fmt.Fprintf(d.out, "History unavailable: %v\n", err)
			return true
		}
		fmt.Fprint(d.out, RenderHistory(outcomes))
		return true
	case CommandRefresh:
		d.apply(d.client.State(ctx))
		d.settle(ctx)
		return true
	}

	if cmd.Action == battle.ActionReset {
		d.apply(d.client.Reset(ctx))
		return true
	}

	d.settle(ctx)
	// A rejected cast resyncs d.last, which may show the enemy still to move
	d.apply(d.client.Cast(ctx, cmd.Action))
	d.settle(ctx)
	return true
}

// settle runs the enemy's turn when the latest snapshot is waiting on it
// and reports whether it did. A failed attempt is retried on the next command.
func (d *duel) settle(ctx context.Context) bool {
	if d.last == nil || d.last.Turn != battle.SideEnemy || d.last.Finished {
		return false
	}

	fmt.Fprintln(d.out, "The enemy is thinking...")
	time.Sleep(d.delay)
	d.apply(d.client.EnemyTurn(ctx))
	return true
}

// apply renders a result; a rejection carrying a snapshot replaces d.last
func (d *duel) apply(snap *api.Snapshot, err error) {
	if err != nil {
		fmt.Fprintf(d.out, "Error: %v\n", err)
		if st := battleapi.StateFromError(err); st != nil {
			d.last = st
			fmt.Fprint(d.out, Render(st))
		}
		return
	}
	d.last = snap
	fmt.Fprint(d.out, Render(snap))
}

// drain discards buffered lines without blocking
func drain(lines <-chan string) (dropped int, open bool) {
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return dropped, false
			}
			dropped++
		default:
			return dropped, true
		}
	}
}
