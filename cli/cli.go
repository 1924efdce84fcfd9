// Package cli provides terminal I/O, interactive creation wizards and
// meta-command dispatch for the questrpg game.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nathoo/questrpg/engine"
	"github.com/nathoo/questrpg/engine/parser"
	"github.com/nathoo/questrpg/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Game      *engine.Game
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
	prompt    *Prompter
}

// New creates a CLI wired to the given game.
func New(g *engine.Game) *CLI {
	return &CLI{
		Game: g,
		In:   os.Stdin,
		Out:  os.Stdout,
	}
}

// Run starts the command loop: prompt, input, dispatch, output. It
// returns when input ends or on /quit.
func (c *CLI) Run() {
	c.prompt = NewPrompter(c.In, c.Out)
	c.prompt.Echo = c.EchoInput

	c.printLine(fmt.Sprintf("Party of %d, %d item(s) in the catalog. Type \"help\" for commands.",
		len(c.Game.Characters()), len(c.Game.Catalog())))

	for {
		input, err := c.prompt.ReadLine("> ")
		if err != nil {
			return
		}
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		// "new <kind>" with nothing else walks through the attributes.
		if kind, ok := wizardKind(input); ok {
			if err := c.wizard(kind); err != nil {
				return
			}
			continue
		}

		result := c.Game.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

func wizardKind(input string) (string, bool) {
	intent := parser.Parse(input)
	if intent.Verb != "new" || intent.Object == "" || intent.Target != "" {
		return "", false
	}
	return engine.NewKind(intent.Object)
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(location string) {
	var err error
	if location == "" {
		err = c.Game.Save()
	} else {
		err = c.Game.SaveAs(location)
	}
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", c.Game.Location()))
}

func (c *CLI) cmdLoad(location string) {
	var err error
	if location == "" {
		err = c.Game.Reload()
	} else {
		err = c.Game.Open(location)
	}
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (%d characters).",
		c.Game.Location(), len(c.Game.Characters())))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [path]  Save the party (default: current save)",
		"  /load [path]  Load a party (default: reload current save)",
		"  /quit         Exit",
		"  /help         Show this help",
		"  /state        Show party, catalog and save details",
		"  /trace        Toggle event trace output",
		"",
	}
	help = append(help, engine.HelpLines()...)
	help = append(help,
		"  new <kind>                       Create interactively, one question at a time",
		"  again (g)                        Repeat your last command",
	)
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	c.printSystem(fmt.Sprintf("Characters: %d", len(c.Game.Characters())))
	c.printSystem(fmt.Sprintf("Catalog: %d item(s)", len(c.Game.Catalog())))
	c.printSystem(fmt.Sprintf("Save: %s", c.Game.Location()))
	if at := c.Game.SavedAt(); !at.IsZero() {
		c.printSystem(fmt.Sprintf("Saved at: %s", at.Local().Format(time.DateTime)))
	} else {
		c.printSystem("Saved at: never")
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
