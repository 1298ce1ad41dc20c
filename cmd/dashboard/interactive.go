package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"infinium/internal/dashboard"
	"infinium/internal/model"
	"infinium/internal/seed"

	"github.com/spf13/cobra"
)

const replHelp = `Commands:
  go <view>                  switch view (views lists them)
  views                      list views
  refresh                    re-render the current view
  dismiss <alert-id>         dismiss an alert
  goal <calories>            set the calorie goal
  add-member key=value;...   add a family member (name, age, gender,
                             relationship, allergies, restrictions,
                             conditions, calorieGoal)
  delete-member <id>         remove a family member
  theme                      toggle dark/light theme
  analyze <file|url>         analyze a meal photo in the background
  plan [days]                generate a diet plan in the background
  history                    reload food history from the backend
  help                       show this help
  quit                       exit`

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE:  a.runInteractive,
	}
}

func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	ws, err := a.newWorkspace()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if a.cfg.SeedFile != "" {
		w, err := seed.NewWatcher(a.cfg.SeedFile, a.logger)
		if err != nil {
			a.logger.Warn().Err(err).Msg("seed file changes will not be picked up")
		} else {
			defer w.Close()
			wg.Go(func() {
				err := w.Watch(ctx, func(ds model.Dataset) {
					ds.User.ID = a.cfg.UserID
					ws.store.ReplaceSeed(ds)
					ws.ctrl.Refresh()
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					a.logger.Error().Err(err).Msg("seed watcher stopped")
				}
			})
		}
	}

	ws.session.CheckConnection(ctx)
	ws.ctrl.Navigate(string(dashboard.ViewDashboard))

	r := &repl{a: a, ws: ws, ctx: ctx, wg: &wg, in: bufio.NewScanner(a.stdin)}
	return r.run()
}

type repl struct {
	a   *app
	ws  *workspace
	ctx context.Context
	wg  *sync.WaitGroup
	in  *bufio.Scanner
}

func (r *repl) run() error {
	for {
		line, ok := r.prompt("> ")
		if !ok {
			return r.in.Err()
		}
		if line == "" {
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if name == "quit" || name == "exit" {
			return nil
		}
		if err := r.exec(name, rest); err != nil {
			r.a.println("error:", err)
		}
	}
}

func (r *repl) prompt(p string) (string, bool) {
	r.a.outMu.Lock()
	fmt.Fprint(r.a.stdout, p)
	r.a.outMu.Unlock()

	if r.ctx.Err() != nil || !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *repl) exec(name, arg string) error {
	ctrl := r.ws.ctrl

	switch name {
	case "help":
		r.a.println(replHelp)
	case "views":
		for _, v := range ctrl.Views() {
			marker := " "
			if v == ctrl.Current() {
				marker = "*"
			}
			r.a.println(marker, v)
		}
	case "go":
		ctrl.Navigate(arg)
		if string(ctrl.Current()) != arg {
			return fmt.Errorf("%w: %s", dashboard.ErrUnknownView, arg)
		}
	case "refresh":
		ctrl.Refresh()
	case "dismiss":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid alert id %q", arg)
		}
		if !ctrl.DismissAlert(id) {
			return fmt.Errorf("alert %d not found", id)
		}
	case "goal":
		return ctrl.UpdateCalorieGoal(arg)
	case "add-member":
		_, err := ctrl.AddFamilyMember(parseFamilyForm(arg))
		return err
	case "delete-member":
		confirm := func() bool {
			answer, ok := r.prompt("Remove this family member? [y/N] ")
			return ok && strings.EqualFold(answer, "y")
		}
		ctrl.DeleteFamilyMember(arg, confirm)
	case "theme":
		_, err := ctrl.ToggleTheme()
		return err
	case "analyze":
		if arg == "" {
			return errors.New("an image file or URL is required")
		}
		var req model.AnalyzeRequest
		var err error
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			req, err = analyzeRequest(arg, nil)
		} else {
			req, err = analyzeRequest("", []string{arg})
		}
		if err != nil {
			return err
		}
		r.background(func() error {
			_, err := r.ws.session.AnalyzeImage(r.ctx, req)
			return err
		})
	case "plan":
		days := model.DefaultPlanDays
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid day count %q", arg)
			}
			days = n
		}
		r.background(func() error {
			_, err := r.ws.session.GenerateDietPlan(r.ctx, days)
			return err
		})
	case "history":
		return r.ws.session.RefreshHistory(r.ctx)
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}

// background runs fn without blocking the prompt. Failures are already
// reported as notifications, so only offline errors are logged.
func (r *repl) background(fn func() error) {
	r.wg.Go(func() {
		if err := fn(); errors.Is(err, dashboard.ErrOffline) {
			r.a.logger.Debug().Err(err).Msg("backend call skipped")
		}
	})
}

// parseFamilyForm reads "key=value;key=value" pairs.
func parseFamilyForm(input string) dashboard.FamilyForm {
	var f dashboard.FamilyForm
	for pair := range strings.SplitSeq(input, ";") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			f.Name = value
		case "age":
			f.Age = value
		case "gender":
			f.Gender = value
		case "relationship":
			f.Relationship = value
		case "allergies":
			f.Allergies = value
		case "restrictions":
			f.DietaryRestrictions = value
		case "conditions":
			f.MedicalConditions = value
		case "caloriegoal":
			f.CalorieGoal = value
		}
	}
	return f
}
