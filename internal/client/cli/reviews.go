package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cinescribe/cinescribe/internal/client/sync"
	"github.com/cinescribe/cinescribe/internal/models"
)

func printReviews(reviews []models.Review) {
	if len(reviews) == 0 {
		printlnFn("No reviews.")
		return
	}
	for i, r := range reviews {
		line := fmt.Sprintf("%2d. %s", i+1, titleColor(r.Title))
		if r.MovieID != 0 {
			line += fmt.Sprintf(" [movie %d]", r.MovieID)
		}
		printlnFn(line)
		if r.MemorableQuotes != "" {
			printlnFn("      " + r.MemorableQuotes)
		}
	}
}

func (a *App) listReviews(ctx context.Context) {
	reviews, err := a.sync.ListReviews(ctx)
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}
	printReviews(reviews)
}

func (a *App) listCollectionReviews(ctx context.Context, args []string) {
	collections := a.sync.Collections()
	i, err := pickIndex(args, len(collections))
	if err != nil {
		printlnFn("Usage: colreviews <number>: " + err.Error())
		return
	}

	reviews, err := a.sync.ListCollectionReviews(ctx, collections[i])
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}
	printReviews(reviews)
}

func (a *App) saveReview(ctx context.Context) {
	collections := a.sync.Collections()
	if len(collections) == 0 {
		printlnFn("Create a collection first with 'newcol <title>'.")
		return
	}

	a.listCollections()
	idx, err := getSimpleText(a.reader, "Collection number", os.Stdout)
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}
	i, err := pickIndex([]string{idx}, len(collections))
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}

	title, err := getSimpleText(a.reader, "Review title", os.Stdout)
	if err != nil || title == "" {
		printlnFn(warnColor("a review needs a title"))
		return
	}

	params := sync.SaveReviewParams{
		CollectionID: collections[i].ID,
		Title:        title,
	}

	if a.movies != nil {
		if movie := a.pickMovie(ctx); movie != nil {
			params.MovieID = movie.ID
			params.ImageURL = movie.PosterURL
		}
	}

	params.MemorableQuotes, _ = GetMultiline(a.reader, "Memorable quotes", os.Stdout)
	params.SceneDescription, _ = GetMultiline(a.reader, "Scene description", os.Stdout)
	params.ActorNotes, _ = GetMultiline(a.reader, "Actor notes", os.Stdout)
	params.CinematographyNotes, _ = GetMultiline(a.reader, "Cinematography notes", os.Stdout)

	r, err := a.sync.SaveReview(ctx, params)
	if err != nil {
		printlnFn(warnColor("save failed: " + err.Error()))
		return
	}
	printlnFn(okColor("Saved review " + r.Title))
}

func (a *App) deleteReview(ctx context.Context, args []string) {
	reviews := a.sync.Reviews()
	i, err := pickIndex(args, len(reviews))
	if err != nil {
		printlnFn("Usage: delreview <number>: " + err.Error())
		return
	}

	r := reviews[i]
	if err := a.sync.DeleteReview(ctx, r); err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}
	printlnFn(okColor("Deleted review " + r.Title))
}
