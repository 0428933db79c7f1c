package executil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteArgs(t *testing.T) {
	t.Run("plain args pass through", func(t *testing.T) {
		assert.Equal(t, "image --severity CRITICAL", QuoteArgs([]string{"image", "--severity", "CRITICAL"}))
	})
	t.Run("args with shell metacharacters are quoted", func(t *testing.T) {
		assert.Equal(t, `'a b' '' 'x;y'`, QuoteArgs([]string{"a b", "", "x;y"}))
	})
	t.Run("embedded single quotes are escaped", func(t *testing.T) {
		assert.Equal(t, `'it'\''s'`, QuoteArgs([]string{"it's"}))
	})
}

func TestRun(t *testing.T) {
	t.Run("dry run never executes", func(t *testing.T) {
		assert.NoError(t, DryRun(context.Background(), "definitely-not-a-binary", "--flag"))
	})
	t.Run("missing binary fails", func(t *testing.T) {
		assert.Error(t, Run(context.Background(), "definitely-not-a-binary"))
	})
	t.Run("nonzero exit surfaces the exit code", func(t *testing.T) {
		err := Run(context.Background(), "false")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exit=1")
	})
}
