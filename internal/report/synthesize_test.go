package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiliu/dealscout/internal/llm"
	"github.com/weiliu/dealscout/internal/types"
)

type stubClient struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubClient) GenerateContent(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, _, prompt string, _ llm.ModelTier) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func details() []types.DetailRecord {
	return []types.DetailRecord{
		{ID: "1", Title: "item one", Price: 99},
		{ID: "2", Title: "item two", Price: 199},
	}
}

func TestSynthesize_ProducesDocument(t *testing.T) {
	client := &stubClient{response: "# Purchase Report\n\nBuy item one."}

	doc, err := Synthesize(context.Background(), client, "context block", details())
	require.NoError(t, err)
	assert.Contains(t, doc, "# Purchase Report")

	// The prompt carries the personalization block and the candidate data.
	assert.Contains(t, client.lastPrompt, "context block")
	assert.Contains(t, client.lastPrompt, "item one")
	assert.Contains(t, client.lastPrompt, "item two")
}

func TestSynthesize_NoDetailsIsAnError(t *testing.T) {
	client := &stubClient{response: "irrelevant"}

	doc, err := Synthesize(context.Background(), client, "", nil)
	assert.Empty(t, doc)
	assert.Error(t, err)
}

func TestSynthesize_ServiceErrorIsTerminal(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("timeout")}

	doc, err := Synthesize(context.Background(), client, "", details())
	assert.Empty(t, doc)
	assert.Error(t, err)
}

func TestSynthesize_EmptyDocumentIsAnError(t *testing.T) {
	client := &stubClient{response: "   \n  "}

	doc, err := Synthesize(context.Background(), client, "", details())
	assert.Empty(t, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}
