package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistream/vistream/pkg/errno"
)

func TestValidateRegister(t *testing.T) {
	valid := func() *RegisterRequest {
		return &RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret1",
		}
	}

	t.Run("accepts a sane request", func(t *testing.T) {
		req := valid()
		require.NoError(t, validateRegister(req))
		assert.Equal(t, "alice", req.ChannelName, "channel name defaults to the username")
	})

	t.Run("keeps an explicit channel name", func(t *testing.T) {
		req := valid()
		req.ChannelName = "Alice Vlogs"
		require.NoError(t, validateRegister(req))
		assert.Equal(t, "Alice Vlogs", req.ChannelName)
	})

	t.Run("normalizes email case and whitespace", func(t *testing.T) {
		req := valid()
		req.Email = "  Alice@Example.COM "
		require.NoError(t, validateRegister(req))
		assert.Equal(t, "alice@example.com", req.Email)
	})

	t.Run("rejects short usernames", func(t *testing.T) {
		req := valid()
		req.Username = "al"
		err := validateRegister(req)
		require.Error(t, err)
		assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)
	})

	t.Run("rejects long usernames", func(t *testing.T) {
		req := valid()
		req.Username = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" // 31
		assert.Error(t, validateRegister(req))
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		for _, email := range []string{"", "alice", "alice@", "@example.com", "a b@example.com"} {
			req := valid()
			req.Email = email
			assert.Error(t, validateRegister(req), "email %q", email)
		}
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		req := valid()
		req.Password = "12345"
		assert.Error(t, validateRegister(req))
	})
}
