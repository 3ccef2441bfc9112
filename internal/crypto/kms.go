package crypto

import (
	"context"
	"encoding/base64"

	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/googleapis/gax-go/v2"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
)

type kmsClient interface {
	Encrypt(ctx context.Context, req *kmspb.EncryptRequest, opts ...gax.CallOption) (*kmspb.EncryptResponse, error)
	Decrypt(ctx context.Context, req *kmspb.DecryptRequest, opts ...gax.CallOption) (*kmspb.DecryptResponse, error)
}

var _ kmsClient = (*gcpkms.KeyManagementClient)(nil)

type kms struct {
	client  kmsClient
	keyName string
}

func NewKMS(client kmsClient, keyName string) *kms {
	return &kms{client: client, keyName: keyName}
}

// Seal encrypts plaintext with the configured key and returns base64 text.
func (k *kms) Seal(ctx context.Context, plaintext string) (string, error) {
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      k.keyName,
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", errs.NewEncryptionError("kms encrypt failed", err)
	}
	return base64.StdEncoding.EncodeToString(resp.Ciphertext), nil
}

// Unseal decrypts base64 ciphertext produced by Seal.
func (k *kms) Unseal(ctx context.Context, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errs.NewEncryptionError("ciphertext is not base64", err)
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       k.keyName,
		Ciphertext: raw,
	})
	if err != nil {
		return "", errs.NewEncryptionError("kms decrypt failed", err)
	}
	return string(resp.Plaintext), nil
}
