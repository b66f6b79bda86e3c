// internal/socket/broadcaster.go
package socket

import (
	"encoding/json"
	"log"
	"time"
)

// Broadcaster is the typed API services use to push dashboard events.
// A nil Broadcaster is safe to call, so services don't need to guard.
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func (b *Broadcaster) send(msgType MessageType, payload map[string]interface{}) {
	if b == nil || b.hub == nil {
		return
	}

	msg := Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Broadcaster] Marshal error for %s: %v", msgType, err)
		return
	}

	select {
	case b.hub.broadcast <- data:
	default:
		log.Printf("[Broadcaster] Broadcast channel full, dropping %s", msgType)
	}
}

// RSVPReceived announces a new RSVP response
func (b *Broadcaster) RSVPReceived(memberName, status, eventID string) {
	b.send(MessageRSVPReceived, map[string]interface{}{
		"member":   memberName,
		"status":   status,
		"event_id": eventID,
	})
}

// PassGenerated announces a freshly issued legacy pass
func (b *Broadcaster) PassGenerated(passNumber, memberName string, degraded bool) {
	b.send(MessagePassGenerated, map[string]interface{}{
		"pass_number": passNumber,
		"member":      memberName,
		"degraded":    degraded,
	})
}

// PaymentSubmitted announces a payment entering the verification queue
func (b *Broadcaster) PaymentSubmitted(paymentID, memberName, amount string) {
	b.send(MessagePaymentSubmitted, map[string]interface{}{
		"payment_id": paymentID,
		"member":     memberName,
		"amount":     amount,
	})
}

// PaymentVerified announces a verified payment and unlocked pass
func (b *Broadcaster) PaymentVerified(paymentID, passNumber string) {
	b.send(MessagePaymentVerified, map[string]interface{}{
		"payment_id":  paymentID,
		"pass_number": passNumber,
	})
}

// PaymentFailed announces a failed payment verification
func (b *Broadcaster) PaymentFailed(paymentID, passNumber string) {
	b.send(MessagePaymentFailed, map[string]interface{}{
		"payment_id":  paymentID,
		"pass_number": passNumber,
	})
}

// MemoriesPublished announces post-event memories going live
func (b *Broadcaster) MemoriesPublished(eventID string, count int) {
	b.send(MessageMemoriesPublished, map[string]interface{}{
		"event_id": eventID,
		"count":    count,
	})
}
