package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskflow/internal/comments"
	"taskflow/internal/discussion"
	flowerrors "taskflow/internal/errors"
)

// commentCmd implements the 'taskflow comment' command group.
func commentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage task discussions",
	}
	cmd.AddCommand(
		commentAddCmd(),
		commentEditCmd(),
		commentRmCmd(),
		commentListCmd(),
		commentCountCmd(),
	)
	return cmd
}

func getDiscussionManager() (*discussion.Manager, error) {
	store, err := getStore()
	if err != nil {
		return nil, err
	}
	return discussion.NewManager(store, logger), nil
}

func defaultAuthor() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "anonymous"
}

// commentAddCmd implements 'taskflow comment add'.
func commentAddCmd() *cobra.Command {
	var replyTo, author string
	cmd := &cobra.Command{
		Use:   "add <task-id> <text>",
		Short: "Add a comment or reply to a task",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			mgr, err := getDiscussionManager()
			if err != nil {
				printError(err)
			}

			taskID, text := args[0], args[1]
			if replyTo != "" {
				tree, err := mgr.Tree(taskID)
				if err != nil {
					printError(err)
				}
				// Replies deeper than the cap are cut off here, not in the
				// tree itself.
				if comments.Find(tree, replyTo) != nil && !comments.CanReply(tree, replyTo) {
					printError(flowerrors.ReplyDepthError{Max: comments.MaxReplyDepth})
				}
			}

			c, err := mgr.AddComment(taskID, text, author, replyTo)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Added comment %s", c.ID)))
		},
	}
	cmd.Flags().StringVarP(&replyTo, "reply-to", "r", "", "Parent comment ID")
	cmd.Flags().StringVarP(&author, "author", "a", defaultAuthor(), "Comment author")
	return cmd
}

// commentEditCmd implements 'taskflow comment edit'.
func commentEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <comment-id> <text>",
		Short: "Edit a comment's text",
		Args:  cobra.ExactArgs(3), //nolint:mnd // CLI takes 3 positional args
		Run: func(_ *cobra.Command, args []string) {
			mgr, err := getDiscussionManager()
			if err != nil {
				printError(err)
			}
			if err = mgr.EditComment(args[0], args[1], args[2]); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Updated comment %s", args[1])))
		},
	}
}

// commentRmCmd implements 'taskflow comment rm'.
func commentRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <task-id> <comment-id>",
		Short: "Delete a comment and all of its replies",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			mgr, err := getDiscussionManager()
			if err != nil {
				printError(err)
			}
			if err = mgr.DeleteComment(args[0], args[1], yes); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed comment %s", args[1])))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

// commentListCmd implements 'taskflow comment list'.
func commentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "Show a task's discussion tree",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			mgr, err := getDiscussionManager()
			if err != nil {
				printError(err)
			}
			tree, err := mgr.Tree(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatCommentTree(tree))
		},
	}
}

// commentCountCmd implements 'taskflow comment count'.
func commentCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <task-id>",
		Short: "Count a task's comments, replies included",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			mgr, err := getDiscussionManager()
			if err != nil {
				printError(err)
			}
			n, err := mgr.Count(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("%d comment(s)", n)))
		},
	}
}
