package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/roomsync/internal/client/models"
	"github.com/dmitrijs2005/roomsync/internal/client/session"
	"github.com/dmitrijs2005/roomsync/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getList = GetList

// SignIn prompts for phone and password and authenticates against the
// current backend. The password bytes are wiped before returning.
func (a *App) SignIn(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.signIn(ctx, phone, string(password))
}

// Demo signs in with the advertised demo credentials.
func (a *App) Demo(ctx context.Context) error {
	creds := a.svc.DemoCredentials()
	a.println("Signing in as demo user", creds.Phone)
	return a.signIn(ctx, creds.Phone, creds.Password)
}

func (a *App) signIn(ctx context.Context, phone, password string) error {
	resp, err := a.svc.SignIn(ctx, phone, password)
	if err != nil {
		return err
	}
	return a.establish(ctx, resp)
}

// SignUp prompts for name, phone and password and creates an account.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.svc.SignUp(ctx, name, phone, string(password))
	if err != nil {
		if errors.Is(err, common.ErrAccountCreated) {
			a.println("Your account may have been created; try 'signin'.")
		}
		return err
	}
	return a.establish(ctx, resp)
}

func (a *App) establish(ctx context.Context, resp models.AuthResponse) error {
	if err := a.sess.SignIn(ctx, resp.User, resp.AccessToken); err != nil {
		return err
	}
	if err := a.sess.LoadCollections(ctx); err != nil {
		a.log.Warn(ctx, "load collections", "err", err)
	}

	a.println("Welcome,", resp.User.Name)
	if a.sess.Snapshot().Status == session.StatusProfileIncomplete {
		a.println("Your profile is incomplete; run 'complete' to finish it.")
	}
	return nil
}

// SignOut ends the session. It never fails.
func (a *App) SignOut(ctx context.Context) error {
	a.sess.SignOut(ctx)
	a.println("Signed out.")
	return nil
}
