package push_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/lib/push"
	"github.com/stretchr/testify/assert"
)

func TestSend_PostsSingleMessage(t *testing.T) {
	var got []push.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := push.NewClient(srv.URL, 100, 5*time.Second)
	err := client.Send(context.Background(), "ExponentPushToken[abc]", "Order update", "Your order is shipped", map[string]interface{}{"orderId": 7})

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "ExponentPushToken[abc]", got[0].To)
	assert.Equal(t, "Order update", got[0].Title)
	assert.Equal(t, "default", got[0].Sound)
}

func TestSend_EmptyTokenIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := push.NewClient(srv.URL, 100, 5*time.Second)
	err := client.Send(context.Background(), "", "t", "b", nil)

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestSend_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := push.NewClient(srv.URL, 100, 5*time.Second)
	err := client.Send(context.Background(), "tok", "t", "b", nil)

	assert.Error(t, err)
}

func TestChunk_SplitsAtBatchSize(t *testing.T) {
	client := push.NewClient("http://unused", 100, time.Second)

	tokens := make([]string, 250)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("tok-%d", i)
	}

	chunks := client.Chunk(tokens)

	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)
	assert.Equal(t, "tok-0", chunks[0][0])
	assert.Equal(t, "tok-249", chunks[2][49])
}

func TestChunk_Empty(t *testing.T) {
	client := push.NewClient("http://unused", 100, time.Second)
	assert.Empty(t, client.Chunk(nil))
}

func TestSendBatch_SendsAllTokens(t *testing.T) {
	var got []push.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := push.NewClient(srv.URL, 100, 5*time.Second)
	err := client.SendBatch(context.Background(), []string{"a", "b", "c"}, "Sale", "Flash sale is live", nil)

	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "b", got[1].To)
	assert.Equal(t, "Sale", got[1].Title)
}
