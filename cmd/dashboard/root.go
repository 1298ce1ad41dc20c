package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"infinium/internal/client"
	"infinium/internal/config"
	"infinium/internal/dashboard"
	"infinium/internal/render"
	"infinium/internal/seed"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// app holds the state shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	outMu  sync.Mutex

	// flags
	apiURL       string
	userID       string
	seedFile     string
	output       string
	foodAnalysis bool

	cfg    *config.ClientConfig
	logger zerolog.Logger
	api    *client.Client
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Terminal dashboard for the infinium diet tracker",
		Long: `dashboard shows the pantry, family and nutrition views of infinium and
talks to the backend for image analysis and diet plans.

Run without arguments to start the interactive dashboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runInteractive,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "backend base URL (overrides DASHBOARD_API_URL)")
	flags.StringVar(&a.userID, "user", "", "user id (overrides DASHBOARD_USER_ID)")
	flags.StringVar(&a.seedFile, "seed", "", "YAML dataset file (overrides DASHBOARD_SEED_FILE)")
	flags.StringVarP(&a.output, "output", "o", outputText, "output format: text or json")
	flags.BoolVar(&a.foodAnalysis, "food-analysis", false, "enable the food analysis view")

	root.AddCommand(
		newViewCmd(a),
		newInteractiveCmd(a),
		newAnalyzeCmd(a),
		newPlanCmd(a),
		newHealthCmd(a),
		newAPICmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.userID != "" {
		cfg.UserID = a.userID
	}
	if a.seedFile != "" {
		cfg.SeedFile = a.seedFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	a.cfg = cfg
	a.logger = config.NewLogger(cfg.Logger, a.stderr)
	a.api = client.New(cfg.APIURL, cfg.UserID, cfg.Timeout(),
		client.WithAPIKey(cfg.APIKey),
		client.WithLogger(a.logger),
	)
	return nil
}

// workspace is the dashboard wiring used by view and interactive commands.
type workspace struct {
	store   *dashboard.Store
	ctrl    *dashboard.Controller
	session *dashboard.Session
}

func (a *app) newWorkspace() (*workspace, error) {
	ds, err := seed.Load(a.cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	ds.User.ID = a.cfg.UserID

	prefs, err := dashboard.LoadPrefs(a.cfg.PrefsFile, render.SystemTheme())
	if err != nil {
		return nil, err
	}

	notifier := dashboard.NotifierFunc(a.notify)
	opts := []dashboard.Option{
		dashboard.WithNotifier(notifier),
		dashboard.WithPrefs(prefs),
		dashboard.WithCalorieRange(a.cfg.CalorieMin, a.cfg.CalorieMax),
	}
	if a.foodAnalysis {
		opts = append(opts, dashboard.WithFoodAnalysis())
	}

	store := dashboard.NewStore(ds)
	ctrl := dashboard.NewController(store, a.painter(), a.logger, opts...)

	return &workspace{
		store:   store,
		ctrl:    ctrl,
		session: dashboard.NewSession(a.api, ctrl, store, notifier, a.logger),
	}, nil
}

func (a *app) painter() dashboard.Painter {
	if a.output == outputJSON {
		return render.NewJSONPainter(lockedWriter{a})
	}
	return render.NewTextPainter(lockedWriter{a})
}

func (a *app) notify(n dashboard.Notification) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.stderr, "[%s] %s\n", n.Level, n.Message)
}

// printJSON writes v indented to stdout.
func (a *app) printJSON(v any) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.stdout, args...)
}

// lockedWriter serialises painter output with notifications.
type lockedWriter struct{ a *app }

func (w lockedWriter) Write(p []byte) (int, error) {
	w.a.outMu.Lock()
	defer w.a.outMu.Unlock()
	return w.a.stdout.Write(p)
}
