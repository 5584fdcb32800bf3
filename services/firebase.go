package services

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"devconnector.com/social-network/repository"
)

// Notification is a push message addressed to every device of one user.
type Notification struct {
	RecipientID string
	Title       string
	Body        string
	Data        map[string]string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NopNotifier drops every notification. Used when FCM is not configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) error { return nil }

// multicastSender is the part of *messaging.Client the notifier needs.
type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMNotifier delivers notifications through Firebase Cloud Messaging and
// forgets device tokens that FCM reports as unregistered.
type FCMNotifier struct {
	client multicastSender
	tokens repository.DeviceTokenRepository
	logger *slog.Logger
}

func NewFCMNotifier(ctx context.Context, credentialsPath string, tokens repository.DeviceTokenRepository, logger *slog.Logger) (*FCMNotifier, error) {
	logger = logger.With("component", "fcm")
	logger.Info("Initializing Firebase", "credentials", credentialsPath)

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	logger.Info("Firebase Messaging client initialized")
	return &FCMNotifier{client: client, tokens: tokens, logger: logger}, nil
}

func (n *FCMNotifier) Notify(ctx context.Context, notif Notification) error {
	tokens, err := n.tokens.TokensForUser(ctx, notif.RecipientID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		n.logger.Debug("No FCM tokens for recipient", "user", notif.RecipientID)
		return nil
	}

	n.logger.Debug("Sending multicast", "tokens", len(tokens), "title", notif.Title)

	resp, err := n.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: notif.Title,
			Body:  notif.Body,
		},
		Data:   notif.Data,
		Tokens: tokens,
	})
	if err != nil {
		return fmt.Errorf("multicast send: %w", err)
	}

	for i, r := range resp.Responses {
		if r.Success {
			continue
		}
		n.logger.Warn("FCM token error", "token", truncate(tokens[i], 10), "error", r.Error)

		if messaging.IsUnregistered(r.Error) {
			if err := n.tokens.DeleteToken(ctx, tokens[i]); err != nil {
				n.logger.Error("Failed to delete dead token", "error", err)
			}
		}
	}

	n.logger.Info("Multicast result", "success", resp.SuccessCount, "failure", resp.FailureCount)
	return nil
}
