package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) listCollections() {
	collections := a.sync.Collections()
	if len(collections) == 0 {
		printlnFn("No collections yet. Create one with 'newcol <title>'.")
		return
	}
	for i, c := range collections {
		line := fmt.Sprintf("%2d. %s (%d reviews)", i+1, titleColor(c.Title), len(c.Reviews))
		if c.ImageURL != "" {
			line += " [poster]"
		}
		printlnFn(line)
	}
}

func (a *App) createCollection(ctx context.Context, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		printlnFn("Usage: newcol <title>")
		return
	}

	c, err := a.sync.CreateCollection(ctx, title)
	if err != nil {
		printlnFn(warnColor("could not create collection: " + err.Error()))
		return
	}
	printlnFn(okColor("Created collection " + c.Title))
}

func (a *App) deleteCollection(ctx context.Context, args []string) {
	collections := a.sync.Collections()
	i, err := pickIndex(args, len(collections))
	if err != nil {
		printlnFn("Usage: delcol <number>: " + err.Error())
		return
	}

	c := collections[i]
	if err := a.sync.DeleteCollection(ctx, c); err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}
	// deletion is fire-and-forget; reviews in the collection are kept
	printlnFn(okColor("Deleted collection " + c.Title))
}

func (a *App) showPoster(ctx context.Context, args []string) {
	collections := a.sync.Collections()
	i, err := pickIndex(args, len(collections))
	if err != nil {
		printlnFn("Usage: poster <number>: " + err.Error())
		return
	}

	c := collections[i]
	if c.ImageURL == "" {
		printlnFn("Collection has no poster yet.")
		return
	}

	data, err := a.images.Fetch(ctx, c.ImageURL)
	if err != nil {
		printlnFn(warnColor("poster fetch failed: " + err.Error()))
		return
	}
	printlnFn(fmt.Sprintf("Poster for %s: %d bytes (%s)", c.Title, len(data), c.ImageURL))
}
