package cli

import (
	"context"
	"errors"
	"os"

	"github.com/cinescribe/cinescribe/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// register creates an account. Per the store's lenient contract, registering
// an already-taken username succeeds without touching the existing record, so
// the user is warned when no fresh session appeared.
func (a *App) register(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}

	if err := a.sync.Register(ctx, username, password); err != nil {
		printlnFn(warnColor("registration failed: " + err.Error()))
		return
	}

	user, err := a.sync.Session()
	if err != nil || user.Username != username {
		printlnFn(warnColor("username already taken, try 'login'"))
		return
	}

	printlnFn(okColor("Welcome, " + username + "!"))
	a.startWatcher(ctx)
}

func (a *App) login(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return
	}

	err = a.sync.Authenticate(ctx, username, password)
	switch {
	case err == nil:
		printlnFn(okColor("Welcome back, " + username + "!"))
		a.startWatcher(ctx)
	case errors.Is(err, common.ErrUserNotFound):
		printlnFn(warnColor("no such user, try 'register'"))
	case errors.Is(err, common.ErrInvalidCredentials):
		printlnFn(warnColor("wrong password"))
	default:
		printlnFn(warnColor("login failed: " + err.Error()))
	}
}
