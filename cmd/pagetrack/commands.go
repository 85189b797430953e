package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/pagetrack/internal/app"
	"github.com/five82/pagetrack/internal/books"
	"github.com/five82/pagetrack/internal/logtail"
	"github.com/five82/pagetrack/internal/stats"
)

// cli holds the state shared by every command.
type cli struct {
	opts       app.Options
	out        io.Writer
	isTerminal func() bool
}

func (c *cli) root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagetrack",
		Short: "Track the books you are reading",
		Long: `pagetrack keeps a list of books with pages read and total pages.

Run without a subcommand to open the terminal UI. When stdout is not a
terminal the book list is printed instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.isTerminal != nil && c.isTerminal() {
				return app.Run(cmd.Context(), c.opts)
			}
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				return c.printList(env.Store.Snapshot().Books)
			})
		},
	}
	cmd.SetOut(c.out)

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.opts.ConfigPath, "config", "", "config file (default ~/.config/pagetrack/config.toml)")
	flags.StringVar(&c.opts.PrefsPath, "prefs", "", "UI prefs file (default ~/.config/pagetrack/prefs.toml)")
	flags.StringVar(&c.opts.Backend, "backend", "", "storage backend: file, sqlite, pebble, or memory")
	flags.StringVar(&c.opts.DataDir, "data", "", "storage directory")

	cmd.AddCommand(
		c.listCmd(),
		c.statsCmd(),
		c.addCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.stepCmd("inc", "Read one more page", true),
		c.stepCmd("dec", "Read one page less", false),
		c.exportCmd(),
		c.importCmd(),
		c.logsCmd(),
	)
	return cmd
}

// withStore opens storage, sends logging to the log file, loads the
// collection, and runs fn.
func (c *cli) withStore(ctx context.Context, fn func(*app.Env) error) error {
	env, err := app.Open(c.opts)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.StartLogging(); err != nil {
		return err
	}
	if err := env.Store.Load(ctx); err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	return fn(env)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				return c.printList(env.Store.Snapshot().Books)
			})
		},
	}
}

func (c *cli) printList(list []books.Book) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(c.out, "No books yet.")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Title", "Author", "Read", "Total")
	for _, b := range list {
		t.Row(b.ID, b.Title, b.Author, b.PagesRead.String(), b.TotalPages.String())
	}
	_, err := fmt.Fprintln(c.out, t.String())
	return err
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show reading totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				s := stats.Compute(env.Store.Snapshot().Books)
				_, err := fmt.Fprintf(c.out,
					"Books:        %d\nPages read:   %d\nTotal pages:  %d\nPercent read: %s%%\n",
					s.TotalBooks, s.TotalPagesRead, s.TotalPages, s.PercentageLabel())
				return err
			})
		},
	}
}

// bookFlags are the editable fields as given on the command line.
type bookFlags struct {
	books.Fields
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Title, "title", "", "book title")
	cmd.Flags().StringVar(&f.Author, "author", "", "book author")
	cmd.Flags().StringVar(&f.PagesRead, "read", "", "pages read")
	cmd.Flags().StringVar(&f.TotalPages, "total", "", "total pages")
}

// overlay replaces the fields of base whose flags were set.
func (f *bookFlags) overlay(cmd *cobra.Command, base books.Fields) books.Fields {
	if cmd.Flags().Changed("title") {
		base.Title = f.Title
	}
	if cmd.Flags().Changed("author") {
		base.Author = f.Author
	}
	if cmd.Flags().Changed("read") {
		base.PagesRead = f.PagesRead
	}
	if cmd.Flags().Changed("total") {
		base.TotalPages = f.TotalPages
	}
	return base
}

func (c *cli) addCmd() *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				b, err := env.Store.Create(cmd.Context(), flags.Fields)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, b.ID)
				return err
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a book's fields",
		Long:  `Change a book's fields. Fields without a flag keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				current, ok := env.Store.Find(id)
				if !ok {
					return notFound(id)
				}
				fields := flags.overlay(cmd, books.FieldsOf(current))
				ok, err := env.Store.Update(cmd.Context(), id, fields)
				if err != nil {
					return err
				}
				if !ok {
					return notFound(id)
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a book",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				ok, err := env.Store.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return notFound(args[0])
				}
				return nil
			})
		},
	}
}

// stepCmd builds inc or dec.
func (c *cli) stepCmd(use, short string, up bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				step := env.Store.DecrementPages
				if up {
					step = env.Store.IncrementPages
				}
				ok, err := step(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !ok {
					return notFound(id)
				}
				b, _ := env.Store.Find(id)
				_, err = fmt.Fprintf(c.out, "%s/%s\n", b.PagesRead, b.TotalPages)
				return err
			})
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection as JSON, CSV, or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(env *app.Env) (err error) {
				list := env.Store.Snapshot().Books

				w := c.out
				if output != "" {
					f, createErr := os.Create(output)
					if createErr != nil {
						return fmt.Errorf("create output: %w", createErr)
					}
					defer func() {
						if cerr := f.Close(); cerr != nil && err == nil {
							err = fmt.Errorf("close output: %w", cerr)
						}
					}()
					w = f
				}
				if err := books.Export(w, format, list); err != nil {
					return err
				}
				log.Printf("exported %d books as %s", len(list), format)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", books.FormatJSON, "json, csv, or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the collection with a JSON array of books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			list, err := books.Decode(data)
			if err != nil {
				return err
			}
			for i := range list {
				if strings.TrimSpace(list[i].ID) == "" {
					list[i].ID = books.NewID()
				}
			}
			return c.withStore(cmd.Context(), func(env *app.Env) error {
				if err := env.Store.SaveAll(cmd.Context(), list); err != nil {
					return err
				}
				log.Printf("imported %d books from %s", len(list), args[0])
				_, err := fmt.Fprintf(c.out, "Imported %d books.\n", len(list))
				return err
			})
		},
	}
}

func (c *cli) logsCmd() *cobra.Command {
	var lines int
	var grep string
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the application log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Open(c.opts)
			if err != nil {
				return err
			}
			defer env.Close()

			out, err := logtail.Read(env.Config.LogPath, lines)
			if err != nil {
				return err
			}
			for _, line := range logtail.Filter(out, grep) {
				if _, err := fmt.Fprintln(c.out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines, 0 for all")
	cmd.Flags().StringVar(&grep, "grep", "", "only lines containing this text")
	return cmd
}

func notFound(id string) error {
	return fmt.Errorf("no book with id %s", strconv.Quote(id))
}
