package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/apetrenko/jobport/internal/models"
	"github.com/apetrenko/jobport/internal/services"
)

// getSimpleText, getPassword, and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// guard maps the route guard's decision for the current auth state to a
// user-facing refusal line. Returns true when the command may proceed.
func (a *App) guard(allowed ...models.Role) bool {
	switch services.Guard(a.auth.State(), allowed...) {
	case services.DecisionAllow:
		return true
	case services.DecisionPending:
		printlnFn("Still checking your session, try again in a moment")
	case services.DecisionLogin:
		printlnFn("Please login first")
	case services.DecisionUnauthorized:
		printlnFn("You do not have permission to do that")
	}
	return false
}

// Register prompts for an email, password, and role and creates an account.
// Account creation and the follow-up sign-in are reported separately: the
// account may exist even when the automatic sign-in failed.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	roleStr, err := getSimpleText(a.reader, "Role (jobseeker/employer)", os.Stdout)
	if err != nil {
		return err
	}
	role := models.Role(roleStr)
	if role != models.RoleJobseeker && role != models.RoleEmployer {
		printlnFn("Role must be jobseeker or employer")
		return nil
	}

	res, err := a.auth.Register(ctx, email, password, role)
	switch {
	case err == nil:
		printlnFn("Account created, you are logged in")
	case res.AccountCreated:
		printlnFn("Account created, but automatic sign-in failed. Use 'login'.")
	default:
		printlnFn("Registration failed:", a.auth.State().Err)
	}
	return err
}

// Login prompts for credentials and authenticates against the backend.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		printlnFn("Login failed:", a.auth.State().Err)
		return err
	}

	st := a.auth.State()
	printlnFn(fmt.Sprintf("Logged in as %s (%s)", st.User.Email, st.User.Role))
	return nil
}

// Logout drops the in-memory identity and the persisted session. Purely
// local, no backend call.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current identity, if any.
func (a *App) Whoami(ctx context.Context) error {
	st := a.auth.State()
	if !st.IsAuthenticated {
		printlnFn("Not logged in")
		return nil
	}
	name := st.User.Name
	if name == "" {
		name = st.User.Email
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s", name, st.User.Email, st.User.Role))
	return nil
}
