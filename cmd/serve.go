package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rewardscope/rewardscope/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard as a web page with a JSON API",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running dashboard server",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return loadSettings().cfg.Server.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	// The server refuses to start without data.
	result, log, err := loadData()
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	addr := serveAddr()
	svc := web.New(web.Config{Addr: addr}, result.Dataset, log)

	fmt.Printf("  rewardscope dashboard on http://%s\n", addr)
	fmt.Printf("  JSON report: http://%s/api/report\n", addr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	addr := serveAddr()
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/healthz") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  Server: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  Server: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st web.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  Server: malformed response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Server: %s\n", st.Status)
	fmt.Printf("  Started: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("  Data: %s\n", st.DataPath)
	fmt.Printf("  Rows: %d across %d faculties\n", st.Rows, st.Faculties)
	fmt.Printf("  Requests served: %d\n", st.RequestCount)
	return nil
}
