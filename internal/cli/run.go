package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v1 "github.com/kubev2v/taskpool/api/v1"
	"github.com/kubev2v/taskpool/internal/batch"
	"github.com/kubev2v/taskpool/internal/config"
	"github.com/kubev2v/taskpool/internal/handlers"
	"github.com/kubev2v/taskpool/internal/models"
	"github.com/kubev2v/taskpool/internal/server"
	"github.com/kubev2v/taskpool/internal/services"
	"github.com/kubev2v/taskpool/pkg/scheduler"
)

const shutdownTimeout = 5 * time.Second

func newRunCmd(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "run <batch-file>",
		Short: "Run every command of a batch file",
		Long: `Run loads a YAML batch file and runs its commands through the scheduler.

The first SIGINT or SIGTERM stops admission: running commands finish and
queued ones never start. A second signal kills the running commands.

Every finished batch is recorded in the history database of --data-folder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := batch.Load(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			runner := services.NewRunner(
				cfg.Scheduler.Workers,
				cfg.Scheduler.RetryPolicy(),
				cfg.Scheduler.Verbose,
				services.WithHistory(s.Batches()),
			)
			scheduler.SetGlobal(runner)

			done := make(chan struct{})
			defer close(done)
			go watchSignals(done, scheduler.Cancel, cancel)

			return runBatch(ctx, cmd.OutOrStdout(), cfg, runner, services.NewHistoryService(s), b)
		},
	}
}

// runBatch runs b and, when enabled, the control plane next to it. The
// control plane is stopped once the batch is over.
func runBatch(ctx context.Context, out io.Writer, cfg *config.Configuration, runner *services.Runner, history *services.HistoryService, b models.Batch) error {
	var srv *server.Server
	if cfg.Server.ControlPlane {
		var err error
		srv, err = server.NewServer(cfg, func(router *gin.RouterGroup) {
			v1.RegisterHandlers(router, handlers.New(runner, history))
		})
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if srv != nil {
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}

	g.Go(func() error {
		if srv != nil {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Stop(shutdownCtx); err != nil {
					zap.S().Named("cli").Warnw("failed to stop control plane", "error", err)
				}
			}()
		}

		p := newPrinter(out)
		outputs, err := runner.Run(gctx, b, p.print)
		if err != nil {
			p.failure(err)
			return err
		}
		if b.Mode != models.BatchModeStreaming {
			for _, o := range outputs {
				p.print(o)
			}
		}
		p.summary(runner.Status())
		return nil
	})

	return g.Wait()
}

// watchSignals cancels admission on the first signal and calls kill on the
// second one.
func watchSignals(done <-chan struct{}, cancelAdmission func(), kill context.CancelFunc) {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	log := zap.S().Named("cli")
	received := 0
	for {
		select {
		case sig := <-sigs:
			received++
			if received == 1 {
				log.Warnw("no new task will be started; send the signal again to kill running tasks", "signal", sig.String())
				cancelAdmission()
				continue
			}
			log.Warnw("killing running tasks", "signal", sig.String())
			kill()
			return
		case <-done:
			return
		}
	}
}

type printer struct {
	mu  sync.Mutex
	out io.Writer
	ok  *color.Color
	bad *color.Color
	dim *color.Color
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out: out,
		ok:  color.New(color.FgGreen, color.Bold),
		bad: color.New(color.FgRed, color.Bold),
		dim: color.New(color.Faint),
	}
}

func (p *printer) print(o models.CommandOutput) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ok.Fprintf(p.out, "✔ %s", o.Name)
	p.dim.Fprintf(p.out, " (%s)\n", o.Duration.Round(time.Millisecond))
	for _, line := range outputLines(o.Stdout) {
		fmt.Fprintf(p.out, "  %s\n", line)
	}
}

func (p *printer) failure(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bad.Fprintf(p.out, "✘ batch failed: %v\n", err)
}

func (p *printer) summary(s models.BatchStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ok.Fprintf(p.out, "%d/%d tasks succeeded", s.Succeeded, s.Total)
	p.dim.Fprintf(p.out, " in %s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
}

func outputLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
