package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matcha/internal/series"
	"github.com/roach88/matcha/internal/value"
)

func TestFromValue(t *testing.T) {
	t.Run("series kinds", func(t *testing.T) {
		tests := []struct {
			v       value.Value
			wantLen int
		}{
			{value.Block{value.Int(1)}, 1},
			{value.Text("ab"), 2},
			{value.Binary{1, 2, 3}, 3},
		}
		for _, tt := range tests {
			s, err := series.FromValue(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, s.Len())
		}
	})

	t.Run("copies the input", func(t *testing.T) {
		orig := value.Block{value.Int(1)}
		s, err := series.FromValue(orig)
		require.NoError(t, err)
		s.Remove(0, 1)
		assert.Len(t, orig, 1)
	})

	t.Run("non-series kinds rejected", func(t *testing.T) {
		_, err := series.FromValue(value.Int(5))
		assert.Error(t, err)
	})
}

func TestTextSeries(t *testing.T) {
	s := series.NewText("aBc")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, value.Char('B'), s.At(1))
	assert.Equal(t, value.KindChar, s.ElemKind(0))
	assert.Equal(t, value.Text("Bc"), s.Slice(1, 3))
	assert.Equal(t, value.Text("aBc"), s.Value())

	t.Run("literal substring with folding", func(t *testing.T) {
		next, ok := s.MatchLiteral(0, value.Text("ab"), false)
		require.True(t, ok)
		assert.Equal(t, 2, next)

		_, ok = s.MatchLiteral(0, value.Text("ab"), true)
		assert.False(t, ok)

		_, ok = s.MatchLiteral(2, value.Text("cd"), false)
		assert.False(t, ok, "overrun must not match")
	})

	t.Run("char literal", func(t *testing.T) {
		next, ok := s.MatchLiteral(2, value.Char('C'), false)
		require.True(t, ok)
		assert.Equal(t, 3, next)
	})

	t.Run("one element", func(t *testing.T) {
		_, ok := s.MatchOne(0, value.Text("a"), false)
		assert.False(t, ok, "text values have no one-element interpretation")

		next, ok := s.MatchOne(0, value.Char('A'), false)
		require.True(t, ok)
		assert.Equal(t, 1, next)
	})

	t.Run("bitset", func(t *testing.T) {
		next, ok := s.MatchBitset(0, value.Charset("xa"))
		require.True(t, ok)
		assert.Equal(t, 1, next)

		_, ok = s.MatchBitset(1, value.Charset("xa"))
		assert.False(t, ok)
	})

	t.Run("mutation", func(t *testing.T) {
		s := series.NewText("ac")
		n, err := s.Insert(1, value.Text("b"))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, value.Text("abc"), s.Value())

		s.Remove(0, 2)
		assert.Equal(t, value.Text("c"), s.Value())

		_, err = s.Insert(0, value.Int(5))
		assert.Error(t, err)
	})
}

func TestArraySeries(t *testing.T) {
	s := series.NewArray(value.Block{value.Int(1), value.Text("ab"), value.Word("w")})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, value.Text("ab"), s.At(1))
	assert.Equal(t, value.KindWord, s.ElemKind(2))
	assert.Equal(t, value.Block{value.Text("ab")}, s.Slice(1, 2))

	t.Run("literal is one-element equality", func(t *testing.T) {
		next, ok := s.MatchLiteral(1, value.Text("AB"), false)
		require.True(t, ok)
		assert.Equal(t, 2, next)

		_, ok = s.MatchLiteral(1, value.Text("AB"), true)
		assert.False(t, ok)

		_, ok = s.MatchLiteral(3, value.Int(1), false)
		assert.False(t, ok, "tail must not match")
	})

	t.Run("bitset needs a char element", func(t *testing.T) {
		_, ok := s.MatchBitset(0, value.Charset("1"))
		assert.False(t, ok)

		c := series.NewArray(value.Block{value.Char('x')})
		next, ok := c.MatchBitset(0, value.Charset("x"))
		require.True(t, ok)
		assert.Equal(t, 1, next)
	})

	t.Run("insert splices blocks", func(t *testing.T) {
		s := series.NewArray(value.Block{value.Int(9)})
		n, err := s.Insert(0, value.Block{value.Int(1), value.Int(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, value.Block{value.Int(1), value.Int(2), value.Int(9)}, s.Value())

		n, err = s.Insert(3, value.Text("t"))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		s.Remove(0, 3)
		assert.Equal(t, value.Block{value.Text("t")}, s.Value())
	})
}

func TestBinarySeries(t *testing.T) {
	s := series.NewBinary([]byte{0xDE, 0xAD, 0xBE})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, value.Int(0xAD), s.At(1))
	assert.Equal(t, value.KindInt, s.ElemKind(0))
	assert.Equal(t, value.Binary{0xAD, 0xBE}, s.Slice(1, 3))

	t.Run("byte run literal", func(t *testing.T) {
		next, ok := s.MatchLiteral(0, value.Binary{0xDE, 0xAD}, false)
		require.True(t, ok)
		assert.Equal(t, 2, next)

		_, ok = s.MatchLiteral(2, value.Binary{0xBE, 0xEF}, false)
		assert.False(t, ok)
	})

	t.Run("int byte literal", func(t *testing.T) {
		next, ok := s.MatchLiteral(2, value.Int(0xBE), false)
		require.True(t, ok)
		assert.Equal(t, 3, next)

		_, ok = s.MatchOne(0, value.Int(300), false)
		assert.False(t, ok, "out-of-range byte value")
	})

	t.Run("mutation", func(t *testing.T) {
		s := series.NewBinary([]byte{1, 4})
		n, err := s.Insert(1, value.Binary{2, 3})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, value.Binary{1, 2, 3, 4}, s.Value())

		_, err = s.Insert(0, value.Int(300))
		assert.Error(t, err)
		_, err = s.Insert(0, value.Text("x"))
		assert.Error(t, err)

		s.Remove(1, 3)
		assert.Equal(t, value.Binary{1, 4}, s.Value())
	})
}
