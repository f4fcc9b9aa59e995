package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
)

func TestValidatePublish(t *testing.T) {
	valid := func() *PublishRequest {
		return &PublishRequest{
			UserId:   1,
			Title:    "my first video",
			Category: "music",
		}
	}

	t.Run("accepts a sane request", func(t *testing.T) {
		req := valid()
		require.NoError(t, validatePublish(req))
		assert.Equal(t, constants.VisibilityPublic, req.Visibility, "visibility defaults to public")
	})

	t.Run("keeps explicit visibility", func(t *testing.T) {
		req := valid()
		req.Visibility = constants.VisibilityUnlisted
		require.NoError(t, validatePublish(req))
		assert.Equal(t, constants.VisibilityUnlisted, req.Visibility)
	})

	t.Run("rejects empty titles", func(t *testing.T) {
		req := valid()
		req.Title = "   "
		err := validatePublish(req)
		require.Error(t, err)
		assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)
	})

	t.Run("rejects long titles", func(t *testing.T) {
		req := valid()
		req.Title = strings.Repeat("a", constants.MaxTitleLength+1)
		assert.Error(t, validatePublish(req))
	})

	t.Run("rejects long descriptions", func(t *testing.T) {
		req := valid()
		req.Description = strings.Repeat("a", constants.MaxDescriptionLength+1)
		assert.Error(t, validatePublish(req))
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		req := valid()
		req.Category = "cooking"
		assert.Error(t, validatePublish(req))
	})

	t.Run("rejects unknown visibility", func(t *testing.T) {
		req := valid()
		req.Visibility = "secret"
		assert.Error(t, validatePublish(req))
	})
}
