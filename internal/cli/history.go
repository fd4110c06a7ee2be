package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kubev2v/taskpool/internal/config"
	"github.com/kubev2v/taskpool/internal/models"
	"github.com/kubev2v/taskpool/internal/services"
)

func newHistoryCmd(cfg *config.Configuration) *cobra.Command {
	var (
		states []string
		name   string
		limit  uint64
	)

	cmd := &cobra.Command{
		Use:   "history [batch-id]",
		Short: "List finished batches, or show one batch with its outputs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DataFolder == "" {
				return fmt.Errorf("history needs --data-folder")
			}

			s, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			history := services.NewHistoryService(s)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				record, err := history.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRecord(out, *record)
				return nil
			}

			params := services.HistoryListParams{Name: name, Limit: limit}
			for _, st := range states {
				params.States = append(params.States, models.BatchState(st))
			}
			result, err := history.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			printHistory(out, result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&states, "state", nil, "Only list batches in these states (completed, cancelled, error)")
	cmd.Flags().StringVar(&name, "name", "", "Only list batches with this name")
	cmd.Flags().Uint64Var(&limit, "limit", 20, "Largest number of batches to list (0: all)")

	return cmd
}

func stateColor(state models.BatchState) *color.Color {
	switch state {
	case models.BatchStateCompleted:
		return color.New(color.FgGreen)
	case models.BatchStateCancelled:
		return color.New(color.FgYellow)
	case models.BatchStateError:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

func printHistory(out io.Writer, result *services.HistoryListResult) {
	for _, b := range result.Batches {
		fmt.Fprintf(out, "%s  %-20s ", b.ID, displayName(b.Name))
		stateColor(b.State).Fprintf(out, "%-9s", b.State)
		fmt.Fprintf(out, "  %d/%d  %s\n", b.Succeeded, b.Total, b.StartedAt.Local().Format(time.DateTime))
	}
	color.New(color.Faint).Fprintf(out, "%d of %d batches\n", len(result.Batches), result.Total)
}

func printRecord(out io.Writer, r models.BatchRecord) {
	s := r.Status
	fmt.Fprintf(out, "batch %s (%s)\n", s.ID, displayName(s.Name))
	fmt.Fprint(out, "state: ")
	stateColor(s.State).Fprintln(out, s.State)
	fmt.Fprintf(out, "tasks: %d/%d succeeded\n", s.Succeeded, s.Total)
	if !s.FinishedAt.IsZero() {
		fmt.Fprintf(out, "duration: %s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
	}
	if s.Error != nil {
		color.New(color.FgRed).Fprintf(out, "error: %v\n", s.Error)
	}

	p := newPrinter(out)
	for _, o := range r.Outputs {
		p.print(o)
	}
}

func displayName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
