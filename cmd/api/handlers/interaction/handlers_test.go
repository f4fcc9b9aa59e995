package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Replies are posted with a parent_comment body field; the old
// parent_id name is not accepted.
func TestCreateCommentParamParentField(t *testing.T) {
	var param CreateCommentParam
	require.NoError(t, json.Unmarshal([]byte(`{"content":"nice video","parent_comment":7}`), &param))
	assert.Equal(t, int64(7), param.ParentId)
	assert.Equal(t, "nice video", param.Content)

	var legacy CreateCommentParam
	require.NoError(t, json.Unmarshal([]byte(`{"content":"x","parent_id":7}`), &legacy))
	assert.Zero(t, legacy.ParentId)
}
