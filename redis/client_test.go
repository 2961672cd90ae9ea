package redis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parserStatus struct {
	Status   string   `json:"status"`
	Attempts int      `json:"attempts"`
	Errors   []string `json:"error_messages"`
}

type chunkDoc struct {
	DocID    string `json:"document_id"`
	Statuses struct {
		Parser parserStatus `json:"parser"`
	} `json:"task_statuses"`
}

func TestMergeDocument(t *testing.T) {
	raw := []byte(`{
		"document_id": "doc-1",
		"owner": "ocr",
		"task_statuses": {
			"ocr": {"status": "completed - success"},
			"parser": {"status": "submitted", "attempts": 1, "error_messages": null}
		}
	}`)
	var doc chunkDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	doc.Statuses.Parser.Status = "started"
	doc.Statuses.Parser.Attempts++
	doc.Statuses.Parser.Errors = append(doc.Statuses.Parser.Errors, "boom")

	merged, err := MergeDocument(raw, &doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"document_id": "doc-1",
		"owner": "ocr",
		"task_statuses": {
			"ocr": {"status": "completed - success"},
			"parser": {"status": "started", "attempts": 2, "error_messages": ["boom"]}
		}
	}`, string(merged))
}

func TestMergeDocumentEmpty(t *testing.T) {
	merged, err := MergeDocument(nil, &chunkDoc{DocID: "doc-2"})
	require.NoError(t, err)

	var doc chunkDoc
	require.NoError(t, json.Unmarshal(merged, &doc))
	assert.Equal(t, "doc-2", doc.DocID)
}
