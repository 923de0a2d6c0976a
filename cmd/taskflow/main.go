package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"taskflow/internal/config"
	flowerrors "taskflow/internal/errors"
	"taskflow/internal/output"
	"taskflow/internal/storage"
	"taskflow/internal/task"
)

//nolint:gochecknoglobals // CLI flags, config, and formatter are package-level by design
var (
	jsonOutput bool
	formatter  output.Formatter
	cfg        *config.Config
	logger     zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "A file-based task tracker with recurring series and discussions",
		Long:  "taskflow - A minimal, file-based task tracker with recurring series and threaded discussions.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}

			var err error
			cfg, err = config.Read()
			if err != nil {
				printError(err)
			}
			logger = newLogger(cfg.LogLevel)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		listCmd(),
		showCmd(),
		statusCmd(),
		doneCmd(),
		rmCmd(),
		recurCmd(),
		commentCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().
		Logger()
}

func getStore() (*storage.Store, error) {
	return storage.NewStore(cfg.DataDir)
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// loadTask finds one task in the collection. Returns the task and the full
// collection so mutations can be written back as a whole.
func loadTask(store *storage.Store, id string) (*task.Task, []*task.Task, error) {
	all, err := store.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, all, nil
		}
	}
	return nil, nil, flowerrors.TaskNotFoundError{ID: id}
}

// initCmd implements 'taskflow init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the taskflow data directory",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = store.Init(force); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized taskflow at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}

// addCmd implements 'taskflow add'.
func addCmd() *cobra.Command {
	var description, priority, category, due, assignee string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			p := task.Priority(priority)
			if !task.IsValidPriority(p) {
				printError(flowerrors.InvalidPriorityError{Value: priority})
			}
			c := task.Category(category)
			if !task.IsValidCategory(c) {
				printError(flowerrors.InvalidCategoryError{Value: category})
			}

			all, err := store.LoadAll()
			if err != nil {
				printError(err)
			}

			now := time.Now().UTC()
			id := task.GenerateID(args[0], now, taskExists(all))
			t := task.NewStandalone(id, args[0], p, c, now)
			t.Description = description
			t.Assignee = assignee
			if due != "" {
				d, err := parseDate(due)
				if err != nil {
					printError(err)
				}
				t.DueDate = &d
			}
			if err = t.Validate(); err != nil {
				printError(err)
			}

			if err = store.SaveAll(append(all, t)); err != nil {
				printError(err)
			}
			logger.Debug().Str("task", t.ID).Msg("task added")
			printOutput(formatter.FormatTask(t))
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (urgent, high, medium, low)")
	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category (personal, work, urgent, ideas)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee")
	return cmd
}

func taskExists(all []*task.Task) func(string) bool {
	ids := make(map[string]bool, len(all))
	for _, t := range all {
		ids[t.ID] = true
	}
	return func(id string) bool { return ids[id] }
}

// listCmd implements 'taskflow list'. Templates never appear here; use
// 'taskflow recur list' for those.
func listCmd() *cobra.Command {
	var showPending, showInProgress, showCompleted, overdue bool
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			all, err := store.LoadAll()
			if err != nil {
				printError(err)
			}

			filter := task.StatusFilter{
				Pending:    showPending,
				InProgress: showInProgress,
				Completed:  showCompleted,
			}
			tasks := task.Listable(all, filter)

			if category != "" {
				c := task.Category(category)
				if !task.IsValidCategory(c) {
					printError(flowerrors.InvalidCategoryError{Value: category})
				}
				var kept []*task.Task
				for _, t := range tasks {
					if t.Category == c {
						kept = append(kept, t)
					}
				}
				tasks = kept
			}
			if overdue {
				now := time.Now().UTC()
				var kept []*task.Task
				for _, t := range tasks {
					if task.IsOverdue(t, now) {
						kept = append(kept, t)
					}
				}
				tasks = kept
			}

			task.Sort(tasks)
			printOutput(formatter.FormatTaskList(tasks))
		},
	}
	cmd.Flags().BoolVar(&showPending, "pending", false, "Show only pending tasks")
	cmd.Flags().BoolVar(&showInProgress, "in-progress", false, "Show only in-progress tasks")
	cmd.Flags().BoolVar(&showCompleted, "completed", false, "Show only completed tasks")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Show only overdue tasks")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	return cmd
}

// showCmd implements 'taskflow show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			t, _, err := loadTask(store, args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// statusCmd implements 'taskflow status'.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			setStatus(args[0], task.Status(args[1]))
		},
	}
}

// doneCmd implements 'taskflow done', a shortcut for marking completed.
func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			setStatus(args[0], task.StatusCompleted)
		},
	}
}

func setStatus(id string, status task.Status) {
	if !task.IsValidStatus(status) {
		printError(flowerrors.InvalidStatusError{Value: string(status)})
	}

	store, err := getStore()
	if err != nil {
		printError(err)
	}

	t, all, err := loadTask(store, id)
	if err != nil {
		printError(err)
	}
	if t.IsTemplate() {
		printError(flowerrors.TemplateTaskError{ID: t.ID})
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	if err = store.SaveAll(all); err != nil {
		printError(err)
	}
	printOutput(formatter.FormatTask(t))
}

// rmCmd implements 'taskflow rm'. Templates are refused here because removing
// one means removing its whole series; that path goes through 'recur rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			t, all, err := loadTask(store, args[0])
			if err != nil {
				printError(err)
			}
			if t.IsTemplate() {
				printError(flowerrors.TemplateTaskError{ID: t.ID})
			}

			kept := make([]*task.Task, 0, len(all)-1)
			for _, other := range all {
				if other.ID != t.ID {
					kept = append(kept, other)
				}
			}
			if err = store.SaveAll(kept); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed task %s", t.ID)))
		},
	}
}
