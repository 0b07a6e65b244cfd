package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"

	"github.com/folioworks/folio/pkg/archive"
	"github.com/folioworks/folio/pkg/chapters"
	"github.com/folioworks/folio/pkg/epub"
)

func main() {
	log := logger.New()

	var opts struct {
		ShowText bool `short:"t" long:"show-text" description:"Print the extracted text of each chapter"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	if len(args) != 1 {
		fmt.Println("go run ./cmd/scripts/debug/resolve-epub <path/to/file.epub>")
		os.Exit(1)
	}

	arc, err := archive.OpenZip(args[0])
	if err != nil {
		log.Err(err).Fatal("archive open error")
	}
	defer arc.Close()

	refs, err := epub.ResolveChapters(arc)
	if err != nil {
		log.Err(err).Fatal("chapter resolution error")
	}

	fmt.Printf("Title: %s\nChapters: %d\n", epub.ResolveTitle(arc), len(refs))
	for i, ref := range refs {
		fmt.Printf("  %3d. %s -> %s\n", i+1, ref.Title, ref.Path)
	}

	if opts.ShowText {
		ctx := log.WithContext(context.Background())
		chs, diags := chapters.Extract(ctx, arc, refs, chapters.Options{})
		for _, ch := range chs {
			fmt.Printf("\n===== %s =====\n%s\n", ch.Title, ch.Text)
		}
		for _, d := range diags {
			fmt.Printf("\ndiagnostic %s: %s\n", d.Code, d.Path)
		}
	}
}
