package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/learnhub/internal/app"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "Show the chapter tree",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		a, cleanup := newApp()
		defer cleanup()

		printTree(a.Sidebar(cmd.Context()), 0)
	},
}

func printTree(items []app.SidebarItem, depth int) {
	for _, item := range items {
		marker := " "
		if item.Completed {
			marker = "✓"
		} else if item.Bookmarked {
			marker = "★"
		}
		fmt.Printf("%s%s %s  (%s)\n", strings.Repeat("  ", depth), marker, item.Chapter.Title, item.Chapter.Slug)
		printTree(item.Children, depth+1)
	}
}

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Open a chapter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		page, err := a.LearnPage(cmd.Context(), args[0])
		if err != nil {
			exitErr("show", err)
		}

		fmt.Printf("# %s\n", page.Chapter.Title)
		if page.Chapter.Description != "" {
			fmt.Println(page.Chapter.Description)
		}
		if len(page.Sections) > 0 {
			fmt.Println("\nContents:")
			for _, s := range page.Sections {
				fmt.Printf("%s- %s\n", strings.Repeat("  ", s.Level-1), s.Title)
			}
		}
		if page.Chapter.Content != "" {
			fmt.Println()
			fmt.Println(page.Chapter.Content)
		}
		if !page.CanCopyCode {
			fmt.Println("\n(sign in to copy code samples)")
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search chapter titles and descriptions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, cleanup := newApp()
		defer cleanup()

		results := a.Content.Search(cmd.Context(), strings.Join(args, " "))
		if len(results) == 0 {
			fmt.Println("no matches")
			return
		}
		for _, r := range results {
			fmt.Printf("%s  %s\n", r.Title, r.URL)
			if r.Excerpt != "" {
				fmt.Printf("    %s\n", r.Excerpt)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(chaptersCmd, showCmd, searchCmd)
}
