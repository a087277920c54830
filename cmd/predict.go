package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"algooee/config"
	"algooee/internal/submission"
	"algooee/pkg/httpclient"
	"algooee/pkg/logger"
	"algooee/pkg/utils"

	"github.com/spf13/cobra"
)

var predictFlags struct {
	isin        string
	startDate   string
	endDate     string
	endpoint    string
	interactive bool
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Request a next-day high prediction from a running server",
	Example: `  algooee predict --isin INE002A01018
  algooee predict --isin INE002A01018 --start-date 2025-01-01 --end-date 2025-06-30
  algooee predict --interactive`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictFlags.isin, "isin", "", "ISIN of the stock")
	predictCmd.Flags().StringVar(&predictFlags.startDate, "start-date", "", "first day of history, YYYY-MM-DD (default 2025-01-01)")
	predictCmd.Flags().StringVar(&predictFlags.endDate, "end-date", "", "last day of history, YYYY-MM-DD (default today)")
	predictCmd.Flags().StringVar(&predictFlags.endpoint, "endpoint", "", "server base URL (default client.endpoint)")
	predictCmd.Flags().BoolVar(&predictFlags.interactive, "interactive", false, "read \"ISIN [start] [end]\" lines from stdin")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	endpoint := utils.StringOr(predictFlags.endpoint, cfg.Client.Endpoint)
	client := httpclient.New(log, endpoint, cfg.Client.Timeout, "")
	submitter := submission.NewSubmitter(
		client,
		submission.NewTerminalView(cmd.OutOrStdout()),
		utils.SystemDateProvider{},
		log,
		submission.WithDefaultStartDate(utils.StringOr(cfg.Predict.DefaultStartDate, "2025-01-01")),
	)

	if predictFlags.interactive {
		return runInteractive(cmdContext(cmd), submitter, cmd.InOrStdin())
	}

	if predictFlags.isin == "" {
		return fmt.Errorf("--isin is required unless --interactive is set")
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := submitter.Submit(ctx, submission.Form{
		ISIN:      predictFlags.isin,
		StartDate: predictFlags.startDate,
		EndDate:   predictFlags.endDate,
	})
	if result.State != submission.StateSuccess {
		return fmt.Errorf("prediction did not succeed: %s", result.State)
	}
	return nil
}

// runInteractive submits one form per input line. A new line supersedes
// a request that is still pending. At end of input the last request is
// allowed to finish.
func runInteractive(ctx context.Context, submitter *submission.Submitter, in io.Reader) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	forms := make(chan submission.Form)
	unregister := submitter.Register(forms)
	defer unregister()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				close(forms)
				if err := submitter.Wait(ctx); err != nil {
					return nil
				}
				return <-scanErr
			}
			form, ok := parseFormLine(line)
			if !ok {
				continue
			}
			select {
			case forms <- form:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// parseFormLine reads "ISIN [start_date] [end_date]". Blank lines are skipped.
func parseFormLine(line string) (submission.Form, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return submission.Form{}, false
	}
	form := submission.Form{ISIN: fields[0]}
	if len(fields) > 1 {
		form.StartDate = fields[1]
	}
	if len(fields) > 2 {
		form.EndDate = fields[2]
	}
	return form, true
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
