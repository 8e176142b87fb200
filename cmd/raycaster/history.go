package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [map]",
	Short: "Show recorded bench runs",
	Long: `Show bench runs stored in the bench database.

With a map ID the latest runs of that map are listed. Without one a
summary per map is printed. On a terminal the interactive history
browser opens unless --plain is given.

Examples:
  raycaster history
  raycaster history maze --plain --limit 20
  raycaster history maze --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to list")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a plain table instead of the browser")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs of the map")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	mapID := ""
	if len(args) == 1 {
		mapID = args[0]
	}

	if flagHistoryClear {
		if mapID == "" {
			return fmt.Errorf("--clear needs a map ID")
		}
		if err := store.ClearRuns(mapID); err != nil {
			return err
		}
		fmt.Printf("Cleared bench history of %s\n", mapID)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		w, h, err := term.GetSize(fd)
		if err != nil {
			w, h = 80, 24
		}
		_, err = tui.RunHistory(store, mapID, w, h)
		return err
	}

	if mapID == "" {
		return printSummary(store)
	}
	return printRuns(store, mapID)
}

func printRuns(store *storage.Store, mapID string) error {
	runs, err := store.RecentRuns(mapID, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("No bench runs for %s\n", mapID)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSIZE\tWORKERS\tFRAMES\tMS/FRAME\tFPS\tDATE")
	for i, row := range tui.RunRows(runs) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, row[1], row[2], row[3], row[4], row[5], row[6])
	}
	return tw.Flush()
}

func printSummary(store *storage.Store) error {
	stats, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No bench runs recorded")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MAP\tRUNS\tFRAMES\tMEAN\tLAST RUN")
	for _, id := range ids {
		st := stats[id]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", id, st.Runs, st.Frames, st.PerFrame(), st.LastRun.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
