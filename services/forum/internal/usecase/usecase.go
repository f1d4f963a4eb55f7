// Package usecase holds the forum's business rules between the HTTP handlers
// and the repositories.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/queue"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/repo"
)

const (
	EventUserWarned          = "user.warned"
	EventUserUpgraded        = "user.upgraded"
	EventAnnouncementCreated = "announcement.created"
)

// EventPublisher is satisfied by *queue.Client. A nil publisher drops events.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.Event) error
}

// publish never fails the calling operation; the store write already happened.
func publish(ctx context.Context, pub EventPublisher, log *logger.Logger, eventType, subject string, attrs map[string]string) {
	if pub == nil {
		return
	}

	event := queue.Event{
		Type:       eventType,
		Subject:    subject,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish %s for %s: %v", eventType, subject, err)
	}
}

func upstream(log *logger.Logger, op string, err error) error {
	log.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s", entity.ErrUpstream, op)
}

// passthrough keeps domain errors and hides everything else behind ErrUpstream.
func passthrough(log *logger.Logger, op string, err error) error {
	for _, known := range []error{entity.ErrNotFound, entity.ErrInvalidInput, entity.ErrForbidden} {
		if errors.Is(err, known) {
			return err
		}
	}
	return upstream(log, op, err)
}

// isAdmin resolves the stored role on every call. An unknown email is never admin.
func isAdmin(ctx context.Context, users repo.UserRepository, email string) (bool, error) {
	if email == "" {
		return false, nil
	}

	user, err := users.GetByEmail(ctx, email)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entity.RoleOf(user) == entity.RoleAdmin, nil
}

// selfOrAdmin admits the caller to a record owned by target.
func selfOrAdmin(ctx context.Context, users repo.UserRepository, caller, target string) error {
	if caller != "" && caller == target {
		return nil
	}

	admin, err := isAdmin(ctx, users, caller)
	if err != nil {
		return err
	}
	if !admin {
		return entity.ErrForbidden
	}
	return nil
}
