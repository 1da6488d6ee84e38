// Command bridgectl is a thin CLI wrapper over the bridge core: load a
// deal, play/undo moves interactively, or run a batch Monte-Carlo
// sample-generate-filter-solve loop across parallel workers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Ark223/AlphaBridge/bridge"
	"github.com/Ark223/AlphaBridge/internal/pbn"
	"github.com/Ark223/AlphaBridge/internal/solver"
)

var log = logrus.StandardLogger()

func main() {
	_ = godotenv.Load() // optional local .env with solver path / defaults

	dealFlag := flag.String("deal", "AKQJ.T987.6543.2 ... ... ...", "PBN deal string")
	contractFlag := flag.String("contract", "3N", "contract string, e.g. 4H")
	leaderFlag := flag.String("leader", "N", "opening leader seat")
	samplesFlag := flag.Int("samples", 100, "number of accepted samples per batch, rounded up to a multiple of -workers")
	workersFlag := flag.Int("workers", 4, "parallel sampling workers")
	solverBinFlag := flag.String("solver", os.Getenv("BRIDGE_SOLVER_BIN"), "double-dummy solver binary path")
	flag.Parse()

	hands, err := pbn.ParseDeal(*dealFlag)
	if err != nil {
		log.WithError(err).Fatal("invalid deal string")
	}
	contract, ok := pbn.ParseContract(*contractFlag)
	if !ok {
		log.WithField("contract", *contractFlag).Fatal("invalid contract string")
	}
	leader, ok := parseSeat(*leaderFlag)
	if !ok {
		log.WithField("leader", *leaderFlag).Fatal("invalid leader seat")
	}

	game := bridge.NewGame(hands, leader, contract)
	renderBanner()
	renderStatus(game)

	switch flag.Arg(0) {
	case "sample":
		if err := runBatchSample(game, *solverBinFlag, *samplesFlag, *workersFlag); err != nil {
			log.WithError(err).Fatal("batch sample failed")
		}
	default:
		runREPL(game)
	}
}

// dealIsComplete reports whether every seat in deal holds a full 13-card
// hand. Generate fills seats in order and can abandon a draw partway
// through, so a short seat other than North must also be caught before
// the deal is handed to Solve.
func dealIsComplete(deal bridge.Deal) bool {
	for _, hand := range deal {
		if len(hand) != 13 {
			return false
		}
	}
	return true
}

func parseSeat(s string) (bridge.Player, bool) {
	switch s {
	case "N", "n":
		return bridge.North, true
	case "E", "e":
		return bridge.East, true
	case "S", "s":
		return bridge.South, true
	case "W", "w":
		return bridge.West, true
	default:
		return 0, false
	}
}

func renderBanner() {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Alpha", pterm.FgLightBlue.ToStyle()),
		putils.LettersFromStringWithStyle("Bridge", pterm.FgLightMagenta.ToStyle()),
	).Srender()
	if err != nil {
		log.WithError(err).Warn("banner render failed")
		return
	}
	pterm.Print(title)
}

func renderStatus(g *bridge.Game) {
	ns, ew := g.Tricks()
	pterm.DefaultBox.WithTitle("Status").Println(
		fmt.Sprintf("Contract: %s   Leader: %s   NS: %d   EW: %d", g.Contract(), g.Leader(), ns, ew),
	)
}

// runREPL drives a minimal interactive loop over Play/Undo/GetMoves.
func runREPL(g *bridge.Game) {
	pterm.Info.Println("Commands: play <card>, undo, redo, moves, quit")
	for {
		if g.IsOver() {
			pterm.Success.Println("Play complete.")
			renderStatus(g)
			return
		}
		input, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("> ").Show()
		switch {
		case input == "quit":
			return
		case input == "moves":
			for _, c := range g.GetMoves() {
				pterm.Println(c.String())
			}
		case input == "undo":
			if !g.Undo() {
				pterm.Warning.Println("nothing to undo")
			}
		case input == "redo":
			if !g.Redo() {
				pterm.Warning.Println("nothing to redo")
			}
		case len(input) > 5 && input[:5] == "play ":
			c, ok := pbn.ParseCard(input[5:])
			if !ok {
				pterm.Error.Println("bad card")
				continue
			}
			if !g.Play(c, true) {
				pterm.Error.Println("illegal move")
				continue
			}
			renderStatus(g)
		default:
			pterm.Warning.Println("unrecognized command")
		}
	}
}

// runBatchSample runs the sample-generate-filter-solve loop across
// workersFlag parallel workers, each with its own independent Sampler,
// aggregating per-move trick counts across every accepted deal.
func runBatchSample(g *bridge.Game, solverBin string, wantSamples, workers int) error {
	if solverBin == "" {
		return fmt.Errorf("no solver binary configured (set --solver or BRIDGE_SOLVER_BIN)")
	}

	dds := solver.NewExecSolver(solverBin)

	results := make(chan map[bridge.Card]int, wantSamples)
	group, ctx := errgroup.WithContext(context.Background())

	perWorker := (wantSamples + workers - 1) / workers
	for w := 0; w < workers; w++ {
		seed := int64(w) + 1
		group.Go(func() error {
			s := g.Sampling(seed)
			produced := 0
			for produced < perWorker {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				deal := s.Generate()
				if !dealIsComplete(deal) || !s.Filter(deal) {
					continue
				}
				scored, err := s.Solve(dds, deal)
				if err != nil {
					return err
				}
				results <- scored
				produced++
			}
			return nil
		})
	}

	go func() {
		_ = group.Wait()
		close(results)
	}()

	totals := map[bridge.Card]int{}
	counts := map[bridge.Card]int{}
	for r := range results {
		for c, tricks := range r {
			totals[c] += tricks
			counts[c]++
		}
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for c, total := range totals {
		avg := float64(total) / float64(counts[c])
		pterm.Println(fmt.Sprintf("%s: avg tricks %.2f over %d samples", c, avg, counts[c]))
	}
	return nil
}
