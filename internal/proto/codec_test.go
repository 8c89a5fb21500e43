package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestCodec_JSONMessages(t *testing.T) {
	c := Codec{}

	b, err := c.Marshal(&CreateRequest{Url: "https://example.com", Shortcode: "abc123"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://example.com","shortcode":"abc123"}`, string(b))

	var got CreateRequest
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, "abc123", got.Shortcode)
	assert.Nil(t, got.Validity)
}

func TestCodec_EmptyPayload(t *testing.T) {
	var got RetrieveRequest
	require.NoError(t, Codec{}.Unmarshal(nil, &got))
	assert.Empty(t, got.Shortcode)
}

func TestCodec_ProtobufMessages(t *testing.T) {
	c := Codec{}

	b, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)

	var got healthpb.HealthCheckResponse
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, got.Status)
}

func TestCodec_InvalidJSON(t *testing.T) {
	var got CreateRequest
	assert.Error(t, Codec{}.Unmarshal([]byte("{"), &got))
	assert.Equal(t, CodecName, Codec{}.Name())
}
