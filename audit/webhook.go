package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/btcsuite/btclog"

	"github.com/lightninglabs/xmrswap/rpcretry"
)

// envelopeJSON is the hex-string wire shape of an Envelope for webhook
// delivery.
type envelopeJSON struct {
	SwapID        string `json:"swap_id"`
	EventKind     string `json:"event_kind"`
	Detail        string `json:"detail"`
	TimestampUnix int64  `json:"timestamp_unix"`
	PayloadHash   string `json:"payload_hash"`
	Signature     string `json:"signature,omitempty"`
	PublicKey     string `json:"public_key,omitempty"`
}

func toWireFormat(env Envelope) envelopeJSON {
	w := envelopeJSON{
		SwapID:        env.Payload.SwapID,
		EventKind:     env.Payload.EventKind,
		Detail:        env.Payload.Detail,
		TimestampUnix: env.Payload.TimestampUnix,
		PayloadHash:   env.PayloadHashHex(),
	}
	if len(env.Signature) > 0 {
		w.Signature = hexEncode(env.Signature)
	}
	if len(env.PublicKey) > 0 {
		w.PublicKey = hexEncode(env.PublicKey)
	}
	return w
}

func hexEncode(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0f]
	}
	return string(out)
}

// WebhookDeliverer best-effort delivers envelopes to a configured
// HTTP endpoint. Delivery failures are logged and dropped; this
// subsystem must never block the state machine.
type WebhookDeliverer struct {
	url        string
	httpClient *http.Client
	retryCfg   rpcretry.Config
	log        btclog.Logger
}

// NewWebhookDeliverer constructs a WebhookDeliverer posting to url.
func NewWebhookDeliverer(url string, retryCfg rpcretry.Config, log btclog.Logger) *WebhookDeliverer {
	return &WebhookDeliverer{
		url:        url,
		httpClient: &http.Client{Timeout: retryCfg.Timeout},
		retryCfg:   retryCfg,
		log:        log,
	}
}

// Deliver posts env to the configured endpoint, retrying transient
// failures per the retry harness. A final failure is logged, never
// returned as fatal to the caller's own control flow.
func (d *WebhookDeliverer) Deliver(ctx context.Context, env Envelope) {
	body, err := json.Marshal(toWireFormat(env))
	if err != nil {
		d.log.Errorf("audit: marshalling envelope for %s: %v", env.Payload.SwapID, err)
		return
	}

	err = rpcretry.Do(ctx, "audit-webhook", d.retryCfg, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return httpStatusError{code: resp.StatusCode}
		}
		return nil
	})
	if err != nil {
		d.log.Warnf("audit: webhook delivery for %s exhausted retries, dropping: %v",
			env.Payload.SwapID, err)
	}
}

type httpStatusError struct {
	code int
}

func (e httpStatusError) Error() string {
	return "audit: non-2xx webhook response"
}
