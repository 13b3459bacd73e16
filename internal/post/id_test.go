package post

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	want := primitive.NewObjectID()
	got, err := ParseID(want.Hex())
	require.NoError(t, err)
	require.Equal(t, want, got)

	for _, raw := range []string{"", "abc", "not-a-hex-identifier-----", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseID(raw)
		require.ErrorIs(t, err, ErrInvalidID, "raw=%q", raw)
	}
}
