package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/newsexplorer/internal/client/client"
	"github.com/dmitrijs2005/newsexplorer/internal/client/form"
	"github.com/dmitrijs2005/newsexplorer/internal/client/modal"
	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
)

const (
	successTitle    = "Registration successfully completed!"
	badCredentials  = "Incorrect email or password"
	notSignedInText = "You are not signed in."
)

// fillForm prompts for every field of f, feeding each answer through
// Change, then submits it. Validation messages are printed under the form
// and the modal stays open. An input error dismisses the modal.
func (a *App) fillForm(f *form.Form) (map[string]string, error) {
	for _, fld := range f.Fields() {
		var value string
		if fld.Type == form.TypePassword {
			pw, err := getPassword(fld.Label, a.out)
			if err != nil {
				a.modals.Dismiss(modal.Escape)
				return nil, err
			}
			value = string(pw)
			common.WipeByteArray(pw)
		} else {
			v, err := getSimpleText(a.reader, fld.Label, a.out)
			if err != nil {
				a.modals.Dismiss(modal.Escape)
				return nil, err
			}
			value = v
		}
		if err := f.Change(fld.Name, value); err != nil {
			return nil, err
		}
	}

	values, err := f.Submit()
	if err != nil {
		a.printFormErrors(f)
		return nil, err
	}
	return values, nil
}

func (a *App) printFormErrors(f *form.Form) {
	for _, fld := range f.Fields() {
		if msg := f.DisplayError(fld.Name); msg != "" {
			fmt.Fprintf(a.out, "  %s: %s\n", fld.Label, msg)
		}
	}
}

// serverMessage picks the text shown under a form for a failed request.
func serverMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, common.ErrAuthFailure):
		return badCredentials
	case errors.Is(err, common.ErrEmailNotAvailable):
		return form.EmailNotAvailable
	case errors.Is(err, common.ErrValidation) && errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return requestErrorTitle
	}
}

// Login opens the sign-in modal and signs in with the entered credentials.
// A failure is shown under the password field and the modal stays open.
func (a *App) Login(ctx context.Context) error {
	if u := a.session.Snapshot().CurrentUser; u != nil {
		fmt.Fprintf(a.out, "Already signed in as %s\n", u.Name)
		return nil
	}

	if a.modals.IsOpen(modal.Success) || a.modals.IsOpen(modal.SignUp) {
		a.modals.Switch(modal.SignIn)
	} else {
		a.modals.Open(modal.SignIn)
	}
	fmt.Fprintln(a.out, "Sign in")

	values, err := a.fillForm(a.signIn)
	if err != nil {
		return err
	}

	err = a.session.Login(ctx, models.Credentials{
		Email:    values[form.FieldEmail],
		Password: values[form.FieldPassword],
	})
	if err != nil {
		if errors.Is(err, common.ErrSuperseded) {
			return err
		}
		a.signIn.SetServerError(form.FieldPassword, serverMessage(err))
		a.printFormErrors(a.signIn)
		return err
	}

	if u := a.session.Snapshot().CurrentUser; u != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Name)
	}
	return nil
}

// Register opens the sign-up modal and creates an account. Server errors
// land in the username slot; success opens the success modal.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Sign out before creating another account.")
		return nil
	}

	if a.modals.IsOpen(modal.SignIn) {
		a.modals.Switch(modal.SignUp)
	} else {
		a.modals.Open(modal.SignUp)
	}
	fmt.Fprintln(a.out, "Sign up")

	values, err := a.fillForm(a.signUp)
	if err != nil {
		return err
	}

	_, err = a.session.Register(ctx, models.Registration{
		Email:    values[form.FieldEmail],
		Password: values[form.FieldPassword],
		Name:     values[form.FieldName],
	})
	if err != nil {
		if errors.Is(err, common.ErrSuperseded) {
			return err
		}
		a.signUp.SetServerError(form.FieldName, serverMessage(err))
		a.printFormErrors(a.signUp)
		return err
	}

	fmt.Fprintln(a.out, successTitle)
	fmt.Fprintln(a.out, "Type 'login' to sign in.")
	return nil
}

// Logout forgets the session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, notSignedInText)
		return nil
	}
	a.session.Logout(ctx)
	a.modals.Close()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// Whoami prints the current user and the saved-articles headline.
func (a *App) Whoami(context.Context) error {
	u := a.session.Snapshot().CurrentUser
	if u == nil {
		fmt.Fprintln(a.out, notSignedInText)
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintln(a.out, models.SavedHeadline(u.Name, len(a.session.SavedArticles())))
	return nil
}
