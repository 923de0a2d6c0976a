package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	flowerrors "taskflow/internal/errors"
	"taskflow/internal/recurrence"
	"taskflow/internal/series"
	"taskflow/internal/task"
)

// recurCmd implements the 'taskflow recur' command group.
func recurCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recur",
		Short: "Manage recurring task series",
	}
	cmd.AddCommand(
		recurAddCmd(),
		recurEditCmd(),
		recurRegenCmd(),
		recurRmCmd(),
		recurInfoCmd(),
		recurListCmd(),
	)
	return cmd
}

func getSeriesManager() (*series.Manager, error) {
	store, err := getStore()
	if err != nil {
		return nil, err
	}
	return series.NewManager(store, logger), nil
}

// recurAddCmd implements 'taskflow recur add'.
func recurAddCmd() *cobra.Command {
	var description, priority, category, assignee string
	var every, days, start, until string
	var interval, maxOccurrences int
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a recurring series",
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

			rule := &recurrence.Rule{
				Pattern:  recurrence.Pattern(every),
				Interval: interval,
			}
			if days != "" {
				weekdays, err := parseWeekdays(days)
				if err != nil {
					printError(err)
				}
				rule.DaysOfWeek = weekdays
			}
			if until != "" {
				end, err := parseDate(until)
				if err != nil {
					printError(err)
				}
				rule.EndDate = &end
			}
			if maxOccurrences > 0 {
				rule.MaxOccurrences = &maxOccurrences
			}

			if start == "" {
				printError(flowerrors.MissingStartDateError{})
			}
			startDate, err := parseDate(start)
			if err != nil {
				printError(err)
			}

			all, err := store.LoadAll()
			if err != nil {
				printError(err)
			}

			now := time.Now().UTC()
			id := task.GenerateID(args[0], now, taskExists(all))
			template := task.NewTemplate(id, args[0], p, c, rule, now)
			template.Description = description
			template.Assignee = assignee
			template.DueDate = &startDate

			mgr := series.NewManager(store, logger)
			template, err = mgr.Create(template)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(template))
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (urgent, high, medium, low)")
	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category (personal, work, urgent, ideas)")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee")
	cmd.Flags().StringVar(&every, "every", "daily", "Pattern (daily, weekly, monthly, yearly)")
	cmd.Flags().IntVar(&interval, "interval", 1, "Repeat every N pattern units")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for weekly rules (e.g. mon,wed or 1,3)")
	cmd.Flags().StringVar(&start, "start", "", "Series start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Last occurrence date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&maxOccurrences, "max", 0, "Maximum number of occurrences")
	return cmd
}

// recurEditCmd implements 'taskflow recur edit'. Only the flags given on the
// command line change; everything else keeps its stored value. The whole
// series is regenerated from the edited template.
func recurEditCmd() *cobra.Command {
	var title, description, priority, category, assignee string
	var every, days, start, until string
	var interval, maxOccurrences int
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recurring series and regenerate its instances",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			stored, _, err := loadTask(store, args[0])
			if err != nil {
				printError(err)
			}
			if !stored.IsTemplate() {
				printError(flowerrors.NotATemplateError{ID: stored.ID})
			}

			edited := *stored
			rule := *stored.Recurrence

			flags := cmd.Flags()
			if flags.Changed("title") {
				edited.Title = title
			}
			if flags.Changed("description") {
				edited.Description = description
			}
			if flags.Changed("assignee") {
				edited.Assignee = assignee
			}
			if flags.Changed("priority") {
				p := task.Priority(priority)
				if !task.IsValidPriority(p) {
					printError(flowerrors.InvalidPriorityError{Value: priority})
				}
				edited.Priority = p
			}
			if flags.Changed("category") {
				c := task.Category(category)
				if !task.IsValidCategory(c) {
					printError(flowerrors.InvalidCategoryError{Value: category})
				}
				edited.Category = c
			}
			if flags.Changed("every") {
				rule.Pattern = recurrence.Pattern(every)
			}
			if flags.Changed("interval") {
				rule.Interval = interval
			}
			if flags.Changed("days") {
				weekdays, err := parseWeekdays(days)
				if err != nil {
					printError(err)
				}
				rule.DaysOfWeek = weekdays
			}
			if flags.Changed("start") {
				startDate, err := parseDate(start)
				if err != nil {
					printError(err)
				}
				edited.DueDate = &startDate
			}
			if flags.Changed("until") {
				if until == "" {
					rule.EndDate = nil
				} else {
					end, err := parseDate(until)
					if err != nil {
						printError(err)
					}
					rule.EndDate = &end
				}
			}
			if flags.Changed("max") {
				if maxOccurrences > 0 {
					rule.MaxOccurrences = &maxOccurrences
				} else {
					rule.MaxOccurrences = nil
				}
			}
			edited.Recurrence = &rule

			mgr := series.NewManager(store, logger)
			updated, err := mgr.Update(&edited)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(updated))
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (urgent, high, medium, low)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (personal, work, urgent, ideas)")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee")
	cmd.Flags().StringVar(&every, "every", "", "Pattern (daily, weekly, monthly, yearly)")
	cmd.Flags().IntVar(&interval, "interval", 0, "Repeat every N pattern units")
	cmd.Flags().StringVar(&days, "days", "", "Weekdays for weekly rules (e.g. mon,wed or 1,3)")
	cmd.Flags().StringVar(&start, "start", "", "Series start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Last occurrence date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&maxOccurrences, "max", 0, "Maximum number of occurrences")
	return cmd
}

// recurRegenCmd implements 'taskflow recur regen'.
func recurRegenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regen <id>",
		Short: "Regenerate a series from its stored rule",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			mgr, err := getSeriesManager()
			if err != nil {
				printError(err)
			}
			template, err := mgr.Regenerate(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(template))
		},
	}
}

// recurRmCmd implements 'taskflow recur rm'.
func recurRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a series and all of its instances",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			mgr, err := getSeriesManager()
			if err != nil {
				printError(err)
			}
			if err = mgr.Delete(args[0], yes); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed recurring series %s", args[0])))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

// recurInfoCmd implements 'taskflow recur info'.
func recurInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show totals for a series",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			template, _, err := loadTask(store, args[0])
			if err != nil {
				printError(err)
			}

			mgr := series.NewManager(store, logger)
			info, err := mgr.Info(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatSeriesInfo(template, info))
		},
	}
}

// recurListCmd implements 'taskflow recur list'.
func recurListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring series templates",
		Run: func(_ *cobra.Command, _ []string) {
			mgr, err := getSeriesManager()
			if err != nil {
				printError(err)
			}
			templates, err := mgr.Templates()
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTaskList(templates))
		},
	}
}

// parseWeekdays parses a comma list of weekday tokens, accepting three-letter
// names (case-insensitive) and numbers 0-6 (Sunday first).
func parseWeekdays(s string) ([]int, error) {
	names := map[string]int{
		"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
	}

	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil {
			if n < 0 || n > 6 {
				return nil, flowerrors.InvalidWeekdayError{Value: n}
			}
			out = append(out, n)
			continue
		}
		key := strings.ToLower(tok)
		if len(key) > 3 {
			key = key[:3]
		}
		d, ok := names[key]
		if !ok {
			return nil, flowerrors.InvalidWeekdayNameError{Value: tok}
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, flowerrors.NoWeekdaysError{}
	}
	return out, nil
}
