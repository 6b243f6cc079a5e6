package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apetrenko/jobport/internal/models"
	"github.com/apetrenko/jobport/internal/session"
)

func wireAll(t *testing.T, client *fakeClient) (*AuthManager, *JobDirectory, *ApplicationLedger) {
	t.Helper()
	log := testLogger(t)
	auth := NewAuthManager(client, session.NewMemoryStore(), log)
	jobs := NewJobDirectory(client, auth, log)
	apps := NewApplicationLedger(client, auth, log)
	WireRefresh(context.Background(), auth, jobs, apps, log)
	return auth, jobs, apps
}

func TestWireRefresh_LoginReloadsBothCollections(t *testing.T) {
	client := &fakeClient{
		LoginUser:   testUser(models.RoleJobseeker),
		LoginToken:  "tok",
		ListJobsRet: someJobs(),
		ListAppsRet: []models.Application{{ID: "a1", UserID: "u1"}},
	}
	auth, jobs, apps := wireAll(t, client)

	require.NoError(t, auth.Login(context.Background(), "jane@example.com", "pw"))

	// One reload each, triggered by the authenticated transition; the
	// loading transition before it changes neither flag nor token.
	require.Equal(t, 1, client.ListJobsCalls)
	require.Equal(t, 1, client.ListAppsCalls)
	require.Len(t, jobs.Jobs(), 2)
	require.Len(t, apps.Applications(), 1)
}

func TestWireRefresh_ErrorClearingTriggersNothing(t *testing.T) {
	client := &fakeClient{
		LoginErr:    errors.New("boom"),
		ListJobsRet: someJobs(),
	}
	auth, _, _ := wireAll(t, client)

	_ = auth.Login(context.Background(), "jane@example.com", "wrong")
	require.Zero(t, client.ListJobsCalls)
	require.Zero(t, client.ListAppsCalls)

	auth.ClearError()
	require.Zero(t, client.ListJobsCalls)
	require.Zero(t, client.ListAppsCalls)
}

func TestWireRefresh_LogoutEmptiesApplications(t *testing.T) {
	client := &fakeClient{
		LoginUser:   testUser(models.RoleJobseeker),
		LoginToken:  "tok",
		ListJobsRet: someJobs(),
		ListAppsRet: []models.Application{{ID: "a1", UserID: "u1"}},
	}
	auth, _, apps := wireAll(t, client)
	ctx := context.Background()

	require.NoError(t, auth.Login(ctx, "jane@example.com", "pw"))
	require.Len(t, apps.Applications(), 1)

	auth.Logout(ctx)

	// Jobs reload once more (public listing), applications empty without a
	// network request.
	require.Equal(t, 2, client.ListJobsCalls)
	require.Equal(t, 1, client.ListAppsCalls)
	require.Empty(t, apps.Applications())
}
