package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/powerclass/marketctl/app"
	"github.com/powerclass/marketctl/config"
	"github.com/powerclass/marketctl/core/actionlog"
	"github.com/powerclass/marketctl/core/model"
)

const defaultCfgPath = "config.yaml"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "marketctl",
	Short:        "Client for the electricity market simulation game",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultCfgPath, "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) && cfgPath == defaultCfgPath {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return config.Load(cfgPath)
}

func newService() (*app.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}

// withService loads the configuration, builds the service and hands it to fn,
// closing it afterwards.
func withService(fn func(ctx context.Context, svc *app.Service) error) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()
	timeout := time.Duration(svc.Config().API.TimeoutSeconds+5) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx, svc)
}

// requireSession returns the persisted session or an actionable error.
func requireSession(svc *app.Service) (*model.GameSession, error) {
	sess := svc.Store.CurrentSession()
	if sess == nil {
		return nil, fmt.Errorf("no session selected, run 'marketctl session select <id>' first")
	}
	return sess, nil
}

// recordAction journals a submission outcome. Journal failures are logged,
// never fatal to the command.
func recordAction(svc *app.Service, action actionlog.Action, sessionID, detail string, err error) {
	rec := actionlog.Record{
		Timestamp: time.Now(),
		Action:    action,
		SessionID: sessionID,
		UtilityID: svc.Store.UtilityID(),
		Detail:    detail,
	}
	if err != nil {
		rec.Err = err.Error()
	}
	if aerr := svc.Actions.Append(context.Background(), rec); aerr != nil {
		svc.Logger().Warnf("action log append: %v", aerr)
	}
}

func parseYearArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", args[0])
	}
	return year, nil
}
