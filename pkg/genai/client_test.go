package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	return srv, client
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "  生成された口コミ  "}},
				}},
			},
		})
	})

	text, err := client.GenerateContent(context.Background(), "gemini-2.5-flash", "プロンプト")
	require.NoError(t, err)

	assert.Equal(t, "生成された口コミ", text, "leading and trailing whitespace is trimmed")
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "プロンプト", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateContentConcatenatesParts(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "前半"}, {"text": "後半"}},
				}},
			},
		})
	})

	text, err := client.GenerateContent(context.Background(), "gemini-pro", "p")
	require.NoError(t, err)
	assert.Equal(t, "前半後半", text)
}

func TestGenerateContentModelNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    404,
				"message": "models/old-model is not found for API version v1beta",
				"status":  "NOT_FOUND",
			},
		})
	})

	_, err := client.GenerateContent(context.Background(), "old-model", "p")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestGenerateContentNotFoundMessageWithOKishStatus(t *testing.T) {
	// Some gateways report retired models with a 400 but the canonical
	// "is not found" message; classification follows the message.
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "models/gone is not found",
			},
		})
	})

	_, err := client.GenerateContent(context.Background(), "gone", "p")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestGenerateContentUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"message": "API key not valid"},
			})
		})

		_, err := client.GenerateContent(context.Background(), "gemini-pro", "p")
		assert.ErrorIs(t, err, ErrUnauthorized, "status %d", status)
	}
}

func TestGenerateContentInvalidKeyAs400(t *testing.T) {
	// The API rejects bad keys with 400 INVALID_ARGUMENT, not 401;
	// classification falls back to the message.
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "API key not valid. Please pass a valid API key.",
				"status":  "INVALID_ARGUMENT",
			},
		})
	})

	_, err := client.GenerateContent(context.Background(), "gemini-2.5-flash", "p")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGenerateContentPermissionDeniedMessage(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Permission denied on resource",
			},
		})
	})

	_, err := client.GenerateContent(context.Background(), "gemini-pro", "p")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGenerateContentGenericError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := client.GenerateContent(context.Background(), "gemini-pro", "p")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrModelNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestGenerateContentNoCandidates(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	})

	_, err := client.GenerateContent(context.Background(), "gemini-pro", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGenerateContentEmptyKey(t *testing.T) {
	client := NewClient("")
	_, err := client.GenerateContent(context.Background(), "gemini-pro", "p")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewClientStripsQuotes(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(` "quoted-key" `, WithBaseURL(srv.URL))
	_, err := client.GenerateContent(context.Background(), "gemini-pro", "p")
	require.NoError(t, err)
	assert.Equal(t, "quoted-key", gotKey)
}
