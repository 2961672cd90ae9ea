package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrappybara.io/depparse/pipeline"
)

// echoPipeline answers with the request it got.
func echoPipeline(request pipeline.Request) <-chan string {
	out := make(chan string, 1)
	buf, _ := json.Marshal(request)
	out <- string(buf)
	close(out)
	return out
}

func TestProcessData(t *testing.T) {
	handler := &Request{Pipeline: echoPipeline}

	tests := []struct {
		name   string
		method string
		body   string
		status int
		want   string
	}{
		{"parse", http.MethodPost, `{"tid":"t1","sentences":[["They","eat"]]}`, http.StatusOK, `{"tid":"t1","sentences":[["They","eat"]]}`},
		{"default tid", http.MethodPost, `{"sentences":[]}`, http.StatusOK, `{"tid":"parser_api","sentences":[]}`},
		{"get", http.MethodGet, ``, http.StatusMethodNotAllowed, ""},
		{"not json", http.MethodPost, `They eat`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ProcessData(rec, httptest.NewRequest(tt.method, "/parse", strings.NewReader(tt.body)))

			require.Equal(t, tt.status, rec.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, rec.Body.String())
			}
		})
	}
}
