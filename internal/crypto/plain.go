package crypto

import "context"

// Sealer encrypts values before they are written to the local store.
type Sealer interface {
	Seal(ctx context.Context, plaintext string) (string, error)
	Unseal(ctx context.Context, ciphertext string) (string, error)
}

// plain is used when no KMS key is configured, e.g. local development.
type plain struct{}

func NewPlain() *plain {
	return &plain{}
}

func (plain) Seal(_ context.Context, plaintext string) (string, error) {
	return plaintext, nil
}

func (plain) Unseal(_ context.Context, ciphertext string) (string, error) {
	return ciphertext, nil
}
