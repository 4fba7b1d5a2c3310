package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ServerErrorAlert décrit une réponse 5xx à signaler
type ServerErrorAlert struct {
	Method     string
	Path       string
	StatusCode int
	RequestID  string
	Origin     string
	UserAgent  string
}

// SlackService gère l'envoi de notifications Slack
type SlackService struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

// SlackMessage représente un message Slack
type SlackMessage struct {
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment représente une pièce jointe Slack
type Attachment struct {
	Color     string  `json:"color,omitempty"`
	Title     string  `json:"title,omitempty"`
	Text      string  `json:"text,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	Timestamp int64   `json:"ts,omitempty"`
	Footer    string  `json:"footer,omitempty"`
}

// Field représente un champ dans une pièce jointe Slack
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NewSlackService crée une nouvelle instance de SlackService.
// Sans webhook, le service est désactivé et n'envoie rien.
func NewSlackService(webhookURL string, logger *zap.Logger) *SlackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if webhookURL == "" {
		logger.Warn("⚠️  Slack webhook URL non configuré - notifications Slack désactivées")
	}

	return &SlackService{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Enabled indique si un webhook est configuré
func (s *SlackService) Enabled() bool {
	return s != nil && s.webhookURL != ""
}

// buildMessage construit le message Slack d'une alerte
func buildMessage(alert ServerErrorAlert, now time.Time) SlackMessage {
	attachment := Attachment{
		Color:     "danger",
		Title:     fmt.Sprintf("🚨 Erreur serveur: %d %s", alert.StatusCode, http.StatusText(alert.StatusCode)),
		Timestamp: now.Unix(),
		Footer:    "Campaign Backend",
		Fields: []Field{
			{Title: "Méthode", Value: alert.Method, Short: true},
			{Title: "Status Code", Value: strconv.Itoa(alert.StatusCode), Short: true},
			{Title: "Chemin", Value: alert.Path, Short: false},
		},
	}

	if alert.RequestID != "" {
		attachment.Fields = append(attachment.Fields, Field{Title: "Request ID", Value: alert.RequestID, Short: true})
	}
	if alert.Origin != "" {
		attachment.Fields = append(attachment.Fields, Field{Title: "Origin", Value: alert.Origin, Short: true})
	}
	if alert.UserAgent != "" {
		attachment.Fields = append(attachment.Fields, Field{Title: "User-Agent", Value: alert.UserAgent, Short: false})
	}

	return SlackMessage{Attachments: []Attachment{attachment}}
}

// SendServerError envoie une alerte sur le webhook Slack
func (s *SlackService) SendServerError(ctx context.Context, alert ServerErrorAlert) error {
	if !s.Enabled() {
		return nil
	}

	jsonData, err := json.Marshal(buildMessage(alert, time.Now()))
	if err != nil {
		return fmt.Errorf("erreur lors de la sérialisation du message Slack: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("erreur lors de la création de la requête: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("erreur lors de l'envoi à Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack a retourné un code d'erreur: %d", resp.StatusCode)
	}

	s.logger.Debug("✓ Notification Slack envoyée",
		zap.String("method", alert.Method),
		zap.String("path", alert.Path),
	)
	return nil
}

// NotifyServerError envoie l'alerte et journalise l'échec éventuel
func (s *SlackService) NotifyServerError(ctx context.Context, alert ServerErrorAlert) {
	if err := s.SendServerError(ctx, alert); err != nil {
		s.logger.Error("❌ Erreur lors de l'envoi de la notification Slack", zap.Error(err))
	}
}
