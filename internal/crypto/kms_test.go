package crypto

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
)

// reverseKMS "encrypts" by reversing bytes.
type reverseKMS struct {
	err     error
	keyName string
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

func (r *reverseKMS) Encrypt(_ context.Context, req *kmspb.EncryptRequest, _ ...gax.CallOption) (*kmspb.EncryptResponse, error) {
	r.keyName = req.Name
	if r.err != nil {
		return nil, r.err
	}
	return &kmspb.EncryptResponse{Ciphertext: reverse(req.Plaintext)}, nil
}

func (r *reverseKMS) Decrypt(_ context.Context, req *kmspb.DecryptRequest, _ ...gax.CallOption) (*kmspb.DecryptResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &kmspb.DecryptResponse{Plaintext: reverse(req.Ciphertext)}, nil
}

func TestKMSSealRoundTrip(t *testing.T) {
	client := &reverseKMS{}
	k := NewKMS(client, "projects/p/locations/l/keyRings/r/cryptoKeys/wallet")

	sealed, err := k.Seal(context.Background(), "01711234890")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "01711234890")
	assert.True(t, strings.HasSuffix(client.keyName, "cryptoKeys/wallet"))

	opened, err := k.Unseal(context.Background(), sealed)
	require.NoError(t, err)
	assert.Equal(t, "01711234890", opened)
}

func TestKMSErrorsAreEncryptionErrors(t *testing.T) {
	k := NewKMS(&reverseKMS{err: errors.New("denied")}, "key")

	_, err := k.Seal(context.Background(), "x")
	var encErr *errs.EncryptionError
	assert.ErrorAs(t, err, &encErr)

	_, err = NewKMS(&reverseKMS{}, "key").Unseal(context.Background(), "%%%")
	assert.ErrorAs(t, err, &encErr)
}

func TestPlainIsIdentity(t *testing.T) {
	p := NewPlain()
	s, err := p.Seal(context.Background(), "abc")
	require.NoError(t, err)
	o, err := p.Unseal(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "abc", o)
}
