package errno

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWithMessage(t *testing.T) {
	err := NotFoundErr.WithMessage("video not found")
	assert.Equal(t, int64(NotFoundErrCode), err.ErrCode)
	assert.Equal(t, "video not found", err.ErrMsg)
	// The sentinel itself is untouched.
	assert.Equal(t, "resource not found", NotFoundErr.ErrMsg)
}

func TestConvertErr(t *testing.T) {
	t.Run("passes ErrNo through", func(t *testing.T) {
		got := ConvertErr(ConflictErr.WithMessage("already subscribed"))
		assert.Equal(t, int64(ConflictErrCode), got.ErrCode)
		assert.Equal(t, "already subscribed", got.ErrMsg)
	})

	t.Run("unwraps wrapped ErrNo", func(t *testing.T) {
		wrapped := errors.Wrap(ForbiddenErr, "subscribe")
		assert.Equal(t, int64(ForbiddenErrCode), ConvertErr(wrapped).ErrCode)
	})

	t.Run("unknown errors become ServiceErr", func(t *testing.T) {
		got := ConvertErr(errors.New("driver: bad connection"))
		assert.Equal(t, int64(ServiceErrCode), got.ErrCode)
		assert.Equal(t, "internal server error", got.ErrMsg)
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[int64]int{
		SuccessCode:          200,
		ParamErrCode:         400,
		ConflictErrCode:      409,
		InvalidOperationCode: 400,
		AuthorizationErrCode: 401,
		ForbiddenErrCode:     403,
		NotFoundErrCode:      404,
		ServiceErrCode:       500,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %d", code)
	}
}
