package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sakif/learnhub/internal/content"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Content administration (requires the write capability)",
	Run: func(cmd *cobra.Command, _ []string) {
		a, cleanup := newApp()
		defer cleanup()

		view, err := a.AdminDashboard(cmd.Context())
		if err != nil {
			exitErr("admin", err)
		}

		fmt.Printf("signed in as %s, capabilities: %v\n", view.User.Email, view.Capabilities)
		fmt.Printf("%d root chapters:\n", len(view.Chapters))
		for _, c := range view.Chapters {
			fmt.Printf("  [%s] %s (%d children)\n", c.ID, c.Title, len(c.Children))
		}
	},
}

var adminCreateChapterCmd = &cobra.Command{
	Use:   "create-chapter <title>",
	Short: "Create a chapter on the backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		order, _ := cmd.Flags().GetInt("order")
		chapter, err := a.Content.CreateChapter(cmd.Context(), content.ChapterInput{
			Title: args[0],
			Order: order,
		})
		if err != nil {
			exitErr("create-chapter", err)
		}
		fmt.Printf("created chapter %s: %s\n", chapter.ID, chapter.Title)
	},
}

var adminDeleteChapterCmd = &cobra.Command{
	Use:   "delete-chapter <id>",
	Short: "Delete a chapter from the backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		if err := a.Content.DeleteChapter(cmd.Context(), args[0]); err != nil {
			exitErr("delete-chapter", err)
		}
		fmt.Println("deleted")
	},
}

var adminUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image to the media library",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		f, err := os.Open(args[0])
		if err != nil {
			exitErr("upload", err)
		}
		defer f.Close()

		item, err := a.Media.Upload(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			exitErr("upload", err)
		}
		fmt.Printf("uploaded as %d: %s\n", item.ID, item.URL)
	},
}

var adminMediaCmd = &cobra.Command{
	Use:   "media",
	Short: "List the media library",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a, cleanup := newApp()
		defer cleanup()

		items, err := a.Media.List(cmd.Context())
		if err != nil {
			exitErr("media", err)
		}
		for _, item := range items {
			fmt.Printf("%d  %s  %s\n", item.ID, item.Filename, item.URL)
		}
	},
}

var adminDeleteMediaCmd = &cobra.Command{
	Use:   "delete-media <id>",
	Short: "Delete a media item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			exitErr("delete-media", fmt.Errorf("id must be numeric: %q", args[0]))
		}
		if err := a.Media.Delete(cmd.Context(), id); err != nil {
			exitErr("delete-media", err)
		}
		fmt.Println("deleted")
	},
}

func init() {
	adminCreateChapterCmd.Flags().Int("order", 0, "Display order among siblings")
	adminCmd.AddCommand(
		adminCreateChapterCmd,
		adminDeleteChapterCmd,
		adminUploadCmd,
		adminMediaCmd,
		adminDeleteMediaCmd,
	)
	RootCmd.AddCommand(adminCmd)
}
