package inference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyzerFor builds an Analyzer whose single mirror replies with body.
func analyzerFor(t *testing.T, status int, body string) *Analyzer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := New([]string{srv.URL}, "", RetryPolicy{MaxAttempts: 1, Backoff: time.Millisecond})
	return NewAnalyzer(c, "summary-model", "sentiment-model")
}

func TestAnalyzer_Summarize(t *testing.T) {
	a := analyzerFor(t, http.StatusOK, `[{"summary_text":"short version"}]`)

	summary, err := a.Summarize(context.Background(), "a very long text")
	require.NoError(t, err)
	assert.Equal(t, "short version", summary)
}

func TestAnalyzer_Summarize_UpstreamErrorObject(t *testing.T) {
	a := analyzerFor(t, http.StatusOK, `{"error":"input too long"}`)

	_, err := a.Summarize(context.Background(), "text")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "input too long", gwErr.Message)
}

func TestAnalyzer_Summarize_UnexpectedShape(t *testing.T) {
	a := analyzerFor(t, http.StatusOK, `{"something":"else"}`)

	_, err := a.Summarize(context.Background(), "text")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Message, "unexpected reply shape")
}

func TestAnalyzer_DetectMood_NormalizesShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "flat list",
			body: `[{"label":"POSITIVE","score":0.91}]`,
			want: "POSITIVE (91.0%)",
		},
		{
			name: "nested list",
			body: `[[{"label":"POSITIVE","score":0.91}]]`,
			want: "POSITIVE (91.0%)",
		},
		{
			name: "picks the top score",
			body: `[[{"label":"NEGATIVE","score":0.124},{"label":"POSITIVE","score":0.876}]]`,
			want: "POSITIVE (87.6%)",
		},
		{
			name: "rounds to one decimal",
			body: `[{"label":"NEGATIVE","score":0.9999}]`,
			want: "NEGATIVE (100.0%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyzerFor(t, http.StatusOK, tt.body)

			mood, err := a.DetectMood(context.Background(), "text")
			require.NoError(t, err)
			assert.Equal(t, tt.want, mood)
		})
	}
}

func TestAnalyzer_DetectMood_UnexpectedShape(t *testing.T) {
	a := analyzerFor(t, http.StatusOK, `"just a string"`)

	_, err := a.DetectMood(context.Background(), "text")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Message, "unexpected reply shape")
}

func TestAnalyzer_GatewayFailurePropagates(t *testing.T) {
	a := analyzerFor(t, http.StatusServiceUnavailable, `{"error":"loading"}`)

	_, err := a.Summarize(context.Background(), "text")
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)

	_, err = a.DetectMood(context.Background(), "text")
	require.ErrorAs(t, err, &gwErr)
}
