package view_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/nfrund/regdesk/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents/html"
)

type ctxKey struct{}

func TestAdapters(t *testing.T) {
	t.Run("gomponent to templ", func(t *testing.T) {
		var buf bytes.Buffer
		err := view.AdaptGomponentToTempl(g.P(g.Class("x"))).Render(context.Background(), &buf)
		require.NoError(t, err)
		assert.Equal(t, `<p class="x"></p>`, buf.String())
	})

	t.Run("templ to gomponent keeps the context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ctxKey{}, "hola")
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, ctx.Value(ctxKey{}).(string))
			return err
		})

		var buf bytes.Buffer
		require.NoError(t, view.AdaptTemplToGomponent(ctx, component).Render(&buf))
		assert.Equal(t, "hola", buf.String())
	})
}
