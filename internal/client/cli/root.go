package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	user, err := a.sync.Session()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("(%s)", user.Username)
}

func (a *App) Root(ctx context.Context) {
	printlnFn(titleColor("Welcome to CineScribe") + " (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("cine %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: collections, newcol, delcol, reviews, colreviews, save, delreview, search, poster, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "collections":
			a.listCollections()
		case "newcol":
			a.createCollection(ctx, strings.Join(args, " "))
		case "delcol":
			a.deleteCollection(ctx, args)
		case "reviews":
			a.listReviews(ctx)
		case "colreviews":
			a.listCollectionReviews(ctx, args)
		case "save":
			a.saveReview(ctx)
		case "delreview":
			a.deleteReview(ctx, args)
		case "search":
			a.searchMovies(ctx, strings.Join(args, " "))
		case "poster":
			a.showPoster(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command: " + cmd)
		}
	}
}

// pickIndex parses a 1-based index argument against a list of length n.
func pickIndex(args []string, n int) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing index argument")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("expected a number between 1 and %d", n)
	}
	return i - 1, nil
}
