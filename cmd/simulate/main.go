package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"blackjack/internal/bot"
	"blackjack/internal/sim"
)

func main() {
	roundsFlag := flag.Int("rounds", 10000, "number of rounds to self-play")
	seedFlag := flag.Int64("seed", time.Now().UnixNano(), "shoe seed, fixed seeds reproduce runs")
	strategyFlag := flag.String("strategy", "basic", "strategy to play: basic or dealer")
	flag.Parse()

	level := bot.BotLevelBasic
	switch *strategyFlag {
	case "basic":
	case "dealer":
		level = bot.BotLevelDealer
	default:
		fmt.Fprintf(os.Stderr, "unknown strategy %q, want basic or dealer\n", *strategyFlag)
		os.Exit(1)
	}

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Black", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("jack", pterm.FgRed.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	spinner, _ := pterm.DefaultSpinner.Start(
		pterm.Sprintf("Playing %d rounds with the %s strategy (seed %d)...", *roundsFlag, *strategyFlag, *seedFlag))

	start := time.Now()
	stats, err := sim.RunRounds(*seedFlag, *roundsFlag, level)
	if err != nil {
		spinner.Fail(err.Error())
		os.Exit(1)
	}
	spinner.Success(pterm.Sprintf("Done in %s", time.Since(start).Round(time.Millisecond)))

	table := pterm.TableData{
		{"Metric", "Value"},
		{"Rounds", pterm.Sprintf("%d", stats.Rounds)},
		{"Hands", pterm.Sprintf("%d", stats.Hands)},
		{"Wins", pterm.Sprintf("%d", stats.Wins)},
		{"Losses", pterm.Sprintf("%d", stats.Losses)},
		{"Ties", pterm.Sprintf("%d", stats.Ties)},
		{"Busts", pterm.Sprintf("%d", stats.Busts)},
		{"Splits", pterm.Sprintf("%d", stats.Splits)},
		{"Doubles", pterm.Sprintf("%d", stats.Doubles)},
		{"Chips wagered", pterm.Sprintf("%d", stats.Wagered)},
		{"Net chips", pterm.Sprintf("%+d", stats.Net)},
		{"House edge", pterm.Sprintf("%.3f%%", stats.HouseEdge()*100)},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(table).Render(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
