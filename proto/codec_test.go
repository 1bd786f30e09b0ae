package pb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestJSONCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)
	assert.Equal(t, "json", codec.Name())
}

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	at := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	in := &HealthResponse{
		HasData:       true,
		Headline:      "SYSTEM NORMAL",
		SignalDbm:     -61,
		LastReadingAt: timestamppb.New(at),
	}

	data, err := codec.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"headline":"SYSTEM NORMAL"`)

	out := new(HealthResponse)
	require.NoError(t, codec.Unmarshal(data, out))
	assert.Equal(t, in.Headline, out.Headline)
	assert.Equal(t, int32(-61), out.SignalDbm)
	assert.True(t, at.Equal(out.LastReadingAt.AsTime()))
}

func TestGettersAreNilSafe(t *testing.T) {
	var h *HealthRequest
	var s *StatsRequest
	var w *HistoryRequest
	assert.Nil(t, h.GetNow())
	assert.Nil(t, s.GetNow())
	assert.Zero(t, w.GetWindowHours())
}
