package services

import (
	"context"
	"sync"

	"github.com/apetrenko/jobport/internal/logging"
)

// WireRefresh subscribes the collections to the auth manager so they stay
// in step with the session: the job directory re-fetches whenever the
// authentication flag flips, the application ledger whenever the flag or
// the token changes. Loading-only transitions trigger nothing.
//
// Reloads run under ctx, which should span the application's lifetime:
// cancelling it stops in-flight refreshes instead of letting a stale
// response mutate state after the caller is gone.
func WireRefresh(ctx context.Context, auth *AuthManager, jobs *JobDirectory, apps *ApplicationLedger, log logging.Logger) {
	var mu sync.Mutex
	prev := auth.State()

	auth.Subscribe(func(st AuthState) {
		mu.Lock()
		last := prev
		prev = st
		mu.Unlock()

		authFlipped := st.IsAuthenticated != last.IsAuthenticated
		tokenChanged := st.Token != last.Token

		if authFlipped {
			if err := jobs.Reload(ctx); err != nil {
				log.Warn(ctx, "job refresh after auth change failed", "error", err)
			}
		}
		if authFlipped || tokenChanged {
			if err := apps.Reload(ctx); err != nil {
				log.Warn(ctx, "application refresh after auth change failed", "error", err)
			}
		}
	})
}
