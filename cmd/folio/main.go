package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"

	"github.com/folioworks/folio/pkg/archive"
	"github.com/folioworks/folio/pkg/backup"
	"github.com/folioworks/folio/pkg/chapters"
	"github.com/folioworks/folio/pkg/config"
	"github.com/folioworks/folio/pkg/epub"
	"github.com/folioworks/folio/pkg/filegen"
	"github.com/folioworks/folio/pkg/findreplace"
	"github.com/folioworks/folio/pkg/version"
)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:        "folio",
		Usage:       "convert manuscripts between epub, chapter archive, and backup formats",
		Description: "CLI to convert manuscripts between epub packages, flat chapter archives, and project backup records",
		Version:     version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
		},
		Commands: []*cli.Command{
			convertCommand(),
			inspectCommand(),
			searchCommand(),
			replaceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "convert a manuscript to another format",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input file (epub, chapter archive, or backup record)", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file", Required: true},
			&cli.StringFlag{Name: "to", Usage: "output format: text, epub, or backup"},
			&cli.IntFlag{Name: "trim", Usage: "drop the first N lines of every extracted chapter", Value: -1},
			&cli.StringFlag{Name: "title", Usage: "override the manuscript title"},
		},
		Action: func(c *cli.Context) error {
			log := logger.New()
			ctx := log.WithContext(c.Context)

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			format := filegen.Format(cfg.Format)
			if c.IsSet("to") {
				format = filegen.Format(c.String("to"))
			}
			trim := cfg.TrimLeadingLines
			if c.Int("trim") >= 0 {
				trim = c.Int("trim")
			}
			title := cfg.Title
			if c.IsSet("title") {
				title = c.String("title")
			}

			gen, err := filegen.GetGenerator(format)
			if err != nil {
				return err
			}

			detected, chs, diags, err := loadManuscript(ctx, c.String("input"), trim, &title)
			if err != nil {
				return err
			}

			log.Info("manuscript loaded", logger.Data{
				"input":       c.String("input"),
				"detected":    detected,
				"chapters":    len(chs),
				"diagnostics": len(diags),
			})

			f, err := os.Create(c.String("output"))
			if err != nil {
				return errors.WithStack(err)
			}
			defer f.Close()

			if err := gen.Generate(ctx, f, title, chs); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return errors.WithStack(err)
			}

			fmt.Printf("Wrote %s (%s, %d chapters)\n", c.String("output"), format, len(chs))
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "print the resolved chapter list of a manuscript",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input file", Required: true},
		},
		Action: func(c *cli.Context) error {
			log := logger.New()
			ctx := log.WithContext(c.Context)

			title := ""
			detected, chs, diags, err := loadManuscript(ctx, c.String("input"), 0, &title)
			if err != nil {
				return err
			}

			fmt.Printf("Input: %s\n", detected)
			if title != "" {
				fmt.Printf("Title: %s\n", title)
			}
			fmt.Printf("Chapters: %d\n", len(chs))
			for i, ch := range chs {
				fmt.Printf("  %3d. %s (%d chars)\n", i+1, ch.Title, len(ch.Text))
			}
			if len(diags) > 0 {
				fmt.Printf("Diagnostics: %d\n", len(diags))
				for _, d := range diags {
					fmt.Printf("  %s: %s\n", d.Code, d.Path)
				}
			}
			return nil
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "list pattern matches in a backup record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "backup record file", Required: true},
			&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "search pattern", Required: true},
			&cli.BoolFlag{Name: "regex", Usage: "treat the pattern as a regular expression"},
		},
		Action: func(c *cli.Context) error {
			record, err := readRecord(c.String("input"))
			if err != nil {
				return err
			}

			session := findreplace.NewSession(record)
			count := 0
			for {
				match, err := session.FindNext(c.String("pattern"), c.Bool("regex"))
				if err != nil {
					return err
				}
				if match == nil {
					break
				}
				count++
				fmt.Printf("%s: %s\n", match.ChapterTitle, match.MatchLine)
			}
			fmt.Printf("%d matches\n", count)
			return nil
		},
	}
}

func replaceCommand() *cli.Command {
	return &cli.Command{
		Name:  "replace",
		Usage: "replace every pattern match in a backup record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "backup record file", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (defaults to the input file)"},
			&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Usage: "search pattern", Required: true},
			&cli.StringFlag{Name: "replacement", Aliases: []string{"r"}, Usage: "replacement text"},
			&cli.BoolFlag{Name: "regex", Usage: "treat the pattern as a regular expression"},
		},
		Action: func(c *cli.Context) error {
			record, err := readRecord(c.String("input"))
			if err != nil {
				return err
			}

			session := findreplace.NewSession(record)
			updated, count, err := session.ReplaceAll(c.String("pattern"), c.String("replacement"), c.Bool("regex"))
			if err != nil {
				return err
			}

			output := c.String("output")
			if output == "" {
				output = c.String("input")
			}
			data, err := updated.Save()
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.WithStack(err)
			}

			fmt.Printf("Replaced %d occurrences in %s\n", count, output)
			return nil
		},
	}
}

// loadManuscript sniffs the input file and reads it into a chapter list. It
// fills in *title from the input when the caller has not set one.
func loadManuscript(ctx context.Context, path string, trim int, title *string) (string, []chapters.Chapter, []chapters.Diagnostic, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", nil, nil, errors.WithStack(err)
	}

	switch {
	case mtype.Is("application/epub+zip"):
		arc, err := archive.OpenZip(path)
		if err != nil {
			return "", nil, nil, err
		}
		defer arc.Close()

		refs, err := epub.ResolveChapters(arc)
		if err != nil {
			return "", nil, nil, err
		}
		if *title == "" {
			*title = epub.ResolveTitle(arc)
		}
		chs, diags := chapters.Extract(ctx, arc, refs, chapters.Options{TrimLeadingLines: trim})
		return "epub", chs, diags, nil

	case mtype.Is("application/zip"):
		arc, err := archive.OpenZip(path)
		if err != nil {
			return "", nil, nil, err
		}
		defer arc.Close()

		chs, diags := chapters.FromArchive(ctx, arc)
		return "chapter archive", chs, diags, nil

	default:
		record, err := readRecord(path)
		if err != nil {
			return "", nil, nil, err
		}
		if *title == "" {
			*title = record.Title
		}
		chs, err := recordChapters(record)
		if err != nil {
			return "", nil, nil, err
		}
		return "backup record", chs, nil, nil
	}
}

func readRecord(path string) (*backup.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return backup.Load(data)
}

func recordChapters(record *backup.Record) ([]chapters.Chapter, error) {
	scenes := record.Revisions[0].Scenes
	chs := make([]chapters.Chapter, 0, len(scenes))
	for _, scene := range scenes {
		text, err := scene.PlainText()
		if err != nil {
			return nil, err
		}
		chs = append(chs, chapters.Chapter{Title: scene.Title, Text: text})
	}
	return chs, nil
}
