package immortalis

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/export"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Share and browse community posts",
}

var (
	postCategory string
	postLimit    int
	exportFormat string
	exportOut    string
)

var postCreateCmd = &cobra.Command{
	Use:   "create <content>",
	Short: "Create a post in a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreatePost(sqldb, service.PostInput{
				Category: postCategory,
				Content:  strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created post %d\n", id)
			return nil
		})
	},
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			posts, err := service.ListPosts(sqldb, service.PostFilter{Category: postCategory, Limit: postLimit})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tCATEGORY\tTIMESTAMP\tCONTENT")
			for _, p := range posts {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", p.ID, p.Category, p.Timestamp, oneLine(p.Content))
			}
			return nil
		})
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a post with its replies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("post id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetPost(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n%s\n", p.Category, p.Timestamp, p.Content)
			return nil
		})
	},
}

var postReplyCmd = &cobra.Command{
	Use:   "reply <id> <text>",
	Short: "Append a reply to a post",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("post id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.AppendReply(sqldb, id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replied to post %d\n", id)
			return nil
		})
	},
}

var postExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export posts as JSON or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(exportFormat))
		if format != export.FormatJSON && format != export.FormatXLSX {
			return fmt.Errorf("%w: --format must be json or xlsx", apperrors.ErrInvalidInput)
		}
		if format == export.FormatXLSX && exportOut == "" {
			return fmt.Errorf("%w: --out is required for xlsx", apperrors.ErrInvalidInput)
		}
		return withDB(func(sqldb *sql.DB) error {
			posts, err := service.ListPosts(sqldb, service.PostFilter{Category: postCategory})
			if err != nil {
				return err
			}
			if exportOut == "" {
				return writePosts(cmd.OutOrStdout(), format, posts)
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := writePosts(f, format, posts); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d post(s) to %s\n", len(posts), exportOut)
			return nil
		})
	},
}

func writePosts(w io.Writer, format string, posts []model.Post) error {
	if format == export.FormatXLSX {
		return export.PostsXLSX(w, posts)
	}
	return export.PostsJSON(w, posts)
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " | ")
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postCreateCmd, postListCmd, postShowCmd, postReplyCmd, postExportCmd)

	postCreateCmd.Flags().StringVar(&postCategory, "category", "", "Post category")
	_ = postCreateCmd.MarkFlagRequired("category")

	postListCmd.Flags().StringVar(&postCategory, "category", "", "Only show this category")
	postListCmd.Flags().IntVar(&postLimit, "limit", 20, "Maximum posts to show (0 for all)")

	postExportCmd.Flags().StringVar(&postCategory, "category", "", "Only export this category")
	postExportCmd.Flags().StringVar(&exportFormat, "format", export.FormatJSON, "Export format: json or xlsx")
	postExportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (stdout when empty, json only)")
}
