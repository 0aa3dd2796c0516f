package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

func TestFixtureEventParsesAsStripeEvent(t *testing.T) {
	now := time.Unix(1700000000, 0)

	for _, eventType := range fixtureTypes() {
		payload, err := fixtureEvent(stripe.EventType(eventType), "cus_42", now)
		require.NoError(t, err, eventType)

		var event stripe.Event
		require.NoError(t, json.Unmarshal(payload, &event), eventType)
		assert.Equal(t, stripe.EventType(eventType), event.Type)
		assert.Equal(t, int64(1700000000), event.Created)
		assert.Equal(t, "cus_42", event.Data.Object["customer"])
	}

	_, err := fixtureEvent("charge.refunded", "cus_42", now)
	assert.Error(t, err)
}

func TestSendSignedVerifiesServerSide(t *testing.T) {
	const secret = "whsec_do_test"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, err := webhook.ConstructEventWithOptions(body, r.Header.Get("Stripe-Signature"), secret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"received":true}`))
	}))
	defer server.Close()

	payload, err := fixtureEvent(stripe.EventTypeInvoicePaid, "cus_1", time.Now())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, sendSigned(&out, server.URL, payload, secret))
	assert.Contains(t, out.String(), `{"received":true}`)

	assert.Error(t, sendSigned(&out, server.URL, payload, "whsec_wrong"))
}
