package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/stefanpenner/tally/pkg/app"
	"github.com/stefanpenner/tally/pkg/config"
	"github.com/stefanpenner/tally/pkg/dayclock"
	"github.com/stefanpenner/tally/pkg/storage"
	"github.com/stefanpenner/tally/pkg/tasks"
	"github.com/stefanpenner/tally/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a := app.New(s, cfg.FlushDebounce)
	a.Load(ctx)
	defer a.Close(ctx)

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")

	if len(args) == 0 {
		return runTUI(a, cfg)
	}

	switch args[0] {
	case "list":
		return cmdList(a, jsonOutput)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: tally add <title...> [!high|!low] [~minutes]")
		}
		return cmdAdd(a, strings.Join(args[1:], " "), jsonOutput)
	case "complete":
		if len(args) < 2 {
			return fmt.Errorf("usage: tally complete <task>")
		}
		return cmdComplete(a, args[1], jsonOutput)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: tally delete <task>")
		}
		return cmdDelete(a, args[1], jsonOutput)
	case "move":
		if len(args) < 3 {
			return fmt.Errorf("usage: tally move <from> <to>")
		}
		return cmdMove(a, args[1], args[2], jsonOutput)
	case "recurring":
		return cmdRecurring(a, args[1:], jsonOutput)
	case "streak":
		return cmdStreak(a, jsonOutput)
	case "badges":
		return cmdBadges(a, jsonOutput)
	case "stats":
		return cmdStats(a, jsonOutput)
	case "export":
		return cmdExport(a)
	case "reset":
		if !hasFlag(args, "--force") {
			return fmt.Errorf("reset wipes all data; re-run with --force")
		}
		a.Reset(ctx)
		fmt.Println("All data cleared.")
		return nil
	default:
		return fmt.Errorf("unknown command: %s\nUsage: tally [list|add|complete|delete|move|recurring|streak|badges|stats|export|reset]", args[0])
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	if cfg.Backend == config.BackendSQLite {
		return storage.NewSQLiteStore(cfg.StorePath())
	}
	return storage.NewFileStore(cfg.StorePath())
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

func runTUI(a *app.App, cfg config.Config) error {
	m := tui.NewModel(a)
	p := tea.NewProgram(m, tea.WithAltScreen())

	sched, err := a.StartScheduler(func() {
		p.Send(tui.TickMsg{})
	})
	if err != nil {
		return err
	}
	defer sched.Stop()

	// Start file watcher so external edits show up live
	cleanup, err := tui.StartWatcher(cfg.StorePath(), p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// resolveTask finds a task by id, id prefix, or (case-insensitive)
// title.
func resolveTask(a *app.App, ref string) (*tasks.Task, error) {
	all := a.AllTasks()
	for i := range all {
		if all[i].ID == ref {
			return &all[i], nil
		}
	}
	var match *tasks.Task
	for i := range all {
		t := &all[i]
		if strings.HasPrefix(t.ID, ref) || strings.EqualFold(t.Title, ref) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous task %q", ref)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no task matching %q", ref)
	}
	return match, nil
}

// CLI Commands

func cmdList(a *app.App, jsonOut bool) error {
	incomplete := a.IncompleteTasks()
	done := a.CompletedToday()

	if jsonOut {
		return outputJSON(map[string]any{
			"incomplete":     incomplete,
			"completedToday": done,
		})
	}

	if len(incomplete) == 0 && len(done) == 0 {
		fmt.Println("No tasks. Add one with: tally add <title>")
		return nil
	}

	for _, t := range incomplete {
		fmt.Printf("○ %s %s%s\n", priorityTag(t.Priority), t.Title, estimateTag(t))
	}
	now := time.Now()
	for _, t := range done {
		when := ""
		if t.CompletedAt != nil {
			when = " at " + dayclock.FormatRelative(*t.CompletedAt, now)
		}
		fmt.Printf("✓ %s (+%d pts%s)\n", t.Title, t.PointsEarned, when)
	}
	return nil
}

func priorityTag(p tasks.Priority) string {
	switch p {
	case tasks.PriorityHigh:
		return "[high]"
	case tasks.PriorityLow:
		return "[low] "
	default:
		return "[med] "
	}
}

func estimateTag(t tasks.Task) string {
	if t.EstimatedMinutes > 0 {
		return fmt.Sprintf(" ~%dm", t.EstimatedMinutes)
	}
	return ""
}

func cmdAdd(a *app.App, input string, jsonOut bool) error {
	title, priority, estimate := parseAddInput(input)
	if title == "" {
		return fmt.Errorf("task title is empty")
	}
	t := a.AddTask(title, priority, estimate)

	if jsonOut {
		return outputJSON(t)
	}
	fmt.Printf("Added: %s %s%s\n", priorityTag(t.Priority), t.Title, estimateTag(t))
	return nil
}

// parseAddInput accepts the same inline syntax as the TUI add line:
// "!high"/"!low" for priority, "~30" for a minute estimate.
func parseAddInput(input string) (string, tasks.Priority, int) {
	priority := tasks.PriorityMedium
	estimate := 0
	var words []string

	for _, tok := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(tok, "!"):
			switch strings.ToLower(strings.TrimPrefix(tok, "!")) {
			case "high", "h":
				priority = tasks.PriorityHigh
			case "low", "l":
				priority = tasks.PriorityLow
			case "medium", "med", "m":
				priority = tasks.PriorityMedium
			}
		case strings.HasPrefix(tok, "~"):
			if n, err := strconv.Atoi(strings.TrimPrefix(tok, "~")); err == nil && n > 0 {
				estimate = n
			}
		default:
			words = append(words, tok)
		}
	}
	return strings.Join(words, " "), priority, estimate
}

func cmdComplete(a *app.App, ref string, jsonOut bool) error {
	t, err := resolveTask(a, ref)
	if err != nil {
		return err
	}
	if t.Completed {
		return fmt.Errorf("%q is already completed", t.Title)
	}

	res := a.CompleteTask(t.ID)
	if res == nil {
		return fmt.Errorf("task %q vanished", ref)
	}

	if jsonOut {
		return outputJSON(res)
	}

	fmt.Printf("✓ %s +%d pts\n", res.Task.Title, res.Points)
	if res.UnderEstimate {
		fmt.Println("Beat the estimate!")
	}
	for _, b := range res.Unlocked {
		fmt.Printf("%s %s unlocked — %s\n", b.Icon, b.Name, b.Description)
	}
	if status := a.StreakStatus(); status.IsCompletedToday {
		fmt.Printf("🔥 Streak: %d day(s)\n", status.Current)
	}
	return nil
}

func cmdDelete(a *app.App, ref string, jsonOut bool) error {
	t, err := resolveTask(a, ref)
	if err != nil {
		return err
	}
	a.DeleteTask(t.ID)

	if jsonOut {
		return outputJSON(map[string]string{"deleted": t.ID})
	}
	fmt.Printf("Deleted: %s\n", t.Title)
	return nil
}

func cmdMove(a *app.App, fromArg, toArg string, jsonOut bool) error {
	from, err := strconv.Atoi(fromArg)
	if err != nil {
		return fmt.Errorf("invalid position %q", fromArg)
	}
	to, err := strconv.Atoi(toArg)
	if err != nil {
		return fmt.Errorf("invalid position %q", toArg)
	}
	a.ReorderTasks(from, to)

	if jsonOut {
		return outputJSON(a.IncompleteTasks())
	}
	return cmdList(a, false)
}

func cmdRecurring(a *app.App, args []string, jsonOut bool) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		templates := a.RecurringTasks()
		if jsonOut {
			return outputJSON(templates)
		}
		if len(templates) == 0 {
			fmt.Println("No recurring tasks.")
			return nil
		}
		for _, rt := range templates {
			state := "active"
			if !rt.IsActive {
				state = "paused"
			}
			when := "daily"
			if rt.Frequency == tasks.FrequencyWeekly {
				when = "weekly (" + rt.DayOfWeek.String() + ")"
			}
			fmt.Printf("%s %s — %s, %s\n", priorityTag(rt.Priority), rt.Title, when, state)
		}
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: tally recurring add <title...> [!high|!low] [~minutes] [--weekly <day>]")
		}
		rest := args[1:]
		freq := tasks.FrequencyDaily
		day := time.Monday
		for i, arg := range rest {
			if arg == "--weekly" {
				freq = tasks.FrequencyWeekly
				if i+1 < len(rest) {
					parsed, err := parseWeekday(rest[i+1])
					if err != nil {
						return err
					}
					day = parsed
					rest = append(append([]string{}, rest[:i]...), rest[i+2:]...)
				} else {
					rest = rest[:i]
				}
				break
			}
		}
		title, priority, estimate := parseAddInput(strings.Join(rest, " "))
		if title == "" {
			return fmt.Errorf("recurring task title is empty")
		}
		rt := a.AddRecurring(title, priority, freq, estimate, day)
		if jsonOut {
			return outputJSON(rt)
		}
		fmt.Printf("Added recurring: %s\n", rt.Title)
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: tally recurring delete <id>")
		}
		a.DeleteRecurring(args[1])
		fmt.Println("Deleted.")
		return nil

	case "toggle":
		if len(args) < 2 {
			return fmt.Errorf("usage: tally recurring toggle <id>")
		}
		rt := a.ToggleRecurring(args[1])
		if rt == nil {
			return fmt.Errorf("no recurring task %q", args[1])
		}
		if jsonOut {
			return outputJSON(rt)
		}
		if rt.IsActive {
			fmt.Printf("%s resumed\n", rt.Title)
		} else {
			fmt.Printf("%s paused\n", rt.Title)
		}
		return nil

	default:
		return fmt.Errorf("usage: tally recurring [list|add|delete|toggle]")
	}
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) || strings.EqualFold(s, d.String()[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func cmdStreak(a *app.App, jsonOut bool) error {
	status := a.StreakStatus()
	if jsonOut {
		return outputJSON(status)
	}

	fmt.Printf("🔥 Current streak: %d day(s)\n", status.Current)
	fmt.Printf("Longest streak: %d day(s)\n", status.Longest)
	switch {
	case status.IsCompletedToday:
		fmt.Println("Today is banked.")
	case status.IsPending:
		fmt.Printf("Finish today's tasks to reach %d.\n", status.PotentialStreak)
	default:
		fmt.Println("No active streak — finish today's tasks to start one.")
	}
	return nil
}

func cmdBadges(a *app.App, jsonOut bool) error {
	list := a.Badges()
	if jsonOut {
		return outputJSON(list)
	}

	for _, b := range list {
		if b.UnlockedAt != nil {
			fmt.Printf("%s %-14s %s (unlocked %s)\n", b.Icon, b.Name, b.Description, b.UnlockedAt.Format("2006-01-02"))
		} else {
			fmt.Printf("🔒 %-14s %s\n", b.Name, b.Condition)
		}
	}
	return nil
}

func cmdStats(a *app.App, jsonOut bool) error {
	weekly := a.WeeklyStats()
	total, daily, under := a.Points()

	if jsonOut {
		return outputJSON(map[string]any{
			"weekly":             weekly,
			"totalPoints":        total,
			"dailyPoints":        daily,
			"tasksUnderEstimate": under,
			"tasksCompleted":     a.TotalCompleted(),
			"dailyPomodoros":     a.DailyPomodoros(),
		})
	}

	for _, day := range weekly {
		bar := strings.Repeat("█", day.Count)
		fmt.Printf("%-4s %s %d\n", day.DayName, bar, day.Count)
	}
	fmt.Println()
	fmt.Printf("Points today: %d (lifetime %d)\n", daily, total)
	fmt.Printf("Tasks completed: %d\n", a.TotalCompleted())
	fmt.Printf("Beat the estimate: %d\n", under)
	fmt.Printf("Pomodoros today: %d\n", a.DailyPomodoros())
	return nil
}

func cmdExport(a *app.App) error {
	return outputJSON(a.Export())
}

// JSON helpers

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
