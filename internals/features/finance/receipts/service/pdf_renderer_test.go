package service

import (
	"context"
	"testing"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
)

func TestRodRenderer_FailedDropsBrowser(t *testing.T) {
	r := NewRodRenderer("")
	closed := 0
	r.closeFn = func(*rod.Browser) error { closed++; return nil }

	t.Run("canceled request keeps the browser", func(t *testing.T) {
		r.browser = rod.New()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r.failed(ctx)
		assert.NotNil(t, r.browser)
		assert.Equal(t, 0, closed)
	})

	t.Run("render error relaunches next time", func(t *testing.T) {
		r.browser = rod.New()
		r.failed(context.Background())
		assert.Nil(t, r.browser)
		assert.Equal(t, 1, closed)
	})

	t.Run("close without browser is a no-op", func(t *testing.T) {
		assert.NoError(t, r.Close())
		assert.Equal(t, 1, closed)
	})
}
