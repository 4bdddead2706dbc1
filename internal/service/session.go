package service

import (
	"context"
	"errors"
	"fmt"

	"farmafacil/internal/model"
	"farmafacil/internal/session"
)

// updateSession applies fn to the stored copy of sess and copies the result
// back into sess. A session that ended in the meantime is not recreated.
func updateSession(ctx context.Context, store session.Store, sess *session.Session, fn func(*session.Session) error) error {
	updated, err := store.Update(ctx, sess.ID, fn)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return model.ErrSessionExpired
		}
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return fmt.Errorf("failed to save session: %w", err)
	}

	*sess = *updated
	return nil
}
