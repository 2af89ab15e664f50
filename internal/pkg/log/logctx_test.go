package log

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// Тесты меняют slog.Default(), поэтому намеренно НЕ используют t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// capture — хендлер, копящий атрибуты последней записи в общий sink,
// переживающий WithAttrs.
type capture struct {
	sink *map[string]slog.Value
	base []slog.Attr
}

func newCapture() *capture {
	m := map[string]slog.Value{}
	return &capture{sink: &m}
}

func (c *capture) Enabled(context.Context, slog.Level) bool { return true }

func (c *capture) Handle(_ context.Context, r slog.Record) error {
	m := map[string]slog.Value{}
	for _, a := range c.base {
		m[a.Key] = a.Value
	}
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value
		return true
	})
	*c.sink = m
	return nil
}

func (c *capture) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &capture{
		sink: c.sink,
		base: append(append([]slog.Attr{}, c.base...), attrs...),
	}
}

func (c *capture) WithGroup(string) slog.Handler { return c }

func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

func TestIntoAndFrom_RoundTrip(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
	require.Equal(t, def, From(context.Background()))
}

func TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	// Значение «не того типа» под нашим ключом.
	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	// *slog.Logger == nil.
	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

func TestInto_ShadowParentLogger(t *testing.T) {
	parentL := newSilent()
	childL := newSilent()

	parent := Into(context.Background(), parentL)
	child := Into(parent, childL)

	require.Equal(t, childL, From(child))
	// Родитель остался прежним.
	require.Equal(t, parentL, From(parent))
}

func TestWith_AttachesAttrs_AndUpdatesContext(t *testing.T) {
	h := newCapture()
	ctx := Into(context.Background(), slog.New(h))

	ctx, l := With(ctx, slog.String("request_id", "rid-1"))

	// Логгер из контекста и возвращённый — один и тот же.
	require.Equal(t, l, From(ctx))

	From(ctx).Info("ping")
	got, ok := (*h.sink)["request_id"]
	require.True(t, ok)
	require.Equal(t, "rid-1", got.String())
}
