package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"scrappybara.io/depparse/pipeline"
)

const defaultTid = "parser_api"

type Request struct {
	Pipeline pipeline.Pipeline
}

// ProcessData parses the tokenized sentences of a JSON body: {"tid": "...", "sentences": [["a", "b"]]}.
func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)
	errLogger := logger.With().Caller().Logger()

	if r.Method != http.MethodPost {
		errLogger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := ioutil.ReadAll(r.Body)
	if err != nil {
		errLogger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	var request pipeline.Request
	if err := json.Unmarshal(msg, &request); err != nil {
		errLogger.Err(err).Int("status", http.StatusBadRequest).Msg("Request body is not a parse request")
		http.Error(w, "", http.StatusBadRequest)
		return
	}
	if request.Tid == "" {
		request.Tid = defaultTid
	}

	logger.Info().Str("tid", request.Tid).Int("sentences", len(request.Sentences)).Msg("Starting pipeline for request from API")
	resp := <-req.Pipeline(request)
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
