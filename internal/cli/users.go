package cli

import (
	"context"
	"fmt"

	"github.com/apetrenko/jobport/internal/models"
)

// Users lists every account on the platform. Admin only; the backend
// re-checks via the bearer token.
func (a *App) Users(ctx context.Context) error {
	if !a.guard(models.RoleAdmin) {
		return nil
	}

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		printlnFn("Failed to fetch users:", err.Error())
		return err
	}
	if len(users) == 0 {
		printlnFn("No users")
		return nil
	}
	for _, u := range users {
		printlnFn(formatUserLine(u))
	}
	return nil
}

func formatUserLine(u models.User) string {
	name := u.Name
	if name == "" {
		name = u.Email
	}
	line := fmt.Sprintf("%s | %s | %s | joined %s", u.ID, name, u.Role, u.CreatedAt.Format("2006-01-02"))
	if u.Company != "" {
		line += " | " + u.Company
	}
	return line
}
