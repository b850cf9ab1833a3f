package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/learnhub/internal/app"
	"github.com/sakif/learnhub/internal/model"
)

// requireUser resolves the current user or exits. Progress commands are
// meaningless without a session to record against.
func requireUser(ctx context.Context, a *app.App) *model.User {
	user := a.Sessions.CurrentUser(ctx)
	if user == nil {
		exitErr("progress", fmt.Errorf("not signed in"))
	}
	return user
}

var likeCmd = &cobra.Command{
	Use:   "like <chapter-id>",
	Short: "Toggle a chapter like",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		user := requireUser(cmd.Context(), a)
		if a.Prefs.ToggleLike(cmd.Context(), user.ID, args[0]) {
			fmt.Println("liked")
		} else {
			fmt.Println("unliked")
		}
	},
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark <chapter-id>",
	Short: "Toggle a chapter bookmark",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		user := requireUser(cmd.Context(), a)
		if a.Prefs.ToggleBookmark(cmd.Context(), user.ID, args[0]) {
			fmt.Println("bookmarked")
		} else {
			fmt.Println("bookmark removed")
		}
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <chapter-id>",
	Short: "Mark a chapter completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		user := requireUser(cmd.Context(), a)
		a.Prefs.MarkCompleted(cmd.Context(), user.ID, args[0])
		fmt.Println("completed")
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your learning profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a, cleanup := newApp()
		defer cleanup()

		view, err := a.Profile(cmd.Context())
		if err != nil {
			exitErr("profile", err)
		}

		fmt.Printf("%s <%s>\n", view.User.Name, view.User.Email)
		fmt.Printf("streak: %d days, time spent: %.0f min\n",
			view.Preferences.LearningStreak, view.Preferences.TotalTimeSpent)
		printChapterList("liked", view.Liked)
		printChapterList("bookmarked", view.Bookmarked)
		printChapterList("completed", view.Completed)
	},
}

func printChapterList(label string, chapters []model.Chapter) {
	fmt.Printf("%s (%d):\n", label, len(chapters))
	for _, c := range chapters {
		fmt.Printf("  %s  /learn/%s\n", c.Title, c.Slug)
	}
}

func init() {
	RootCmd.AddCommand(likeCmd, bookmarkCmd, completeCmd, profileCmd)
}
