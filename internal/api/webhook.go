package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/globeview/globeview/internal/model"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "x-webhook-signature"

// Sign computes the hex signature a caller must send for a body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature compares the presented signature against the one the
// secret produces, in constant time.
func verifySignature(body []byte, signature, secret string) bool {
	expected := Sign(body, secret)
	if len(signature) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}

// handleWebhook authenticates an inbound update against every active
// webhook secret and creates the record on a match. Tags are upserted
// by name; the matched webhook's last-trigger time is refreshed.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Missing webhook signature"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error("webhook body read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	hooks, err := s.store.ActiveWebhooks()
	if err != nil {
		s.logger.Error("webhook lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	var matched *model.Webhook
	for i := range hooks {
		if verifySignature(body, signature, hooks[i].Secret) {
			matched = &hooks[i]
			break
		}
	}
	if matched == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid webhook signature"})
		return
	}

	var payload model.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.logger.Error("webhook payload parse failed", "webhook", matched.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	update, err := s.store.CreateUpdate(model.IntelligenceUpdate{
		Title:      payload.Title,
		Category:   payload.Category,
		Location:   payload.Location,
		Date:       payload.Date,
		Time:       payload.Time,
		Source:     payload.Source,
		SourceType: payload.SourceType,
		SourceIcon: payload.SourceIcon,
		Excerpt:    payload.Excerpt,
		Content:    payload.Content,
		SourceURL:  payload.SourceURL,
		Icon:       payload.Icon,
		Metadata:   payload.Metadata,
		WebhookID:  matched.ID,
		Status:     model.StatusActive,
	})
	if err != nil {
		s.logger.Error("webhook create failed", "webhook", matched.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	for _, name := range payload.Tags {
		tag, err := s.store.UpsertTag(name)
		if err != nil {
			s.logger.Error("tag upsert failed", "tag", name, "error", err)
			continue
		}
		if err := s.store.AddTagToUpdate(update.ID, tag); err != nil {
			s.logger.Error("tag attach failed", "tag", name, "update", update.ID, "error", err)
			continue
		}
		update.Tags = append(update.Tags, tag)
	}

	if err := s.store.TouchWebhook(matched.ID, time.Now()); err != nil {
		s.logger.Error("webhook touch failed", "webhook", matched.Name, "error", err)
	}

	s.logger.Info("webhook update created", "webhook", matched.Name, "id", update.ID)
	writeJSON(w, http.StatusOK, update)
}
