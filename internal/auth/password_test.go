package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher()

	first, err := h.Hash("secret123")
	assert.NoError(t, err)
	second, err := h.Hash("secret123")
	assert.NoError(t, err)

	// Fresh salt per call, so the digests differ but both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret123", first))
	assert.True(t, h.Verify("secret123", second))
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher()
	digest, err := h.Hash("secret123")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		digest    string
		want      bool
	}{
		{
			name:      "correct password",
			plaintext: "secret123",
			digest:    digest,
			want:      true,
		},
		{
			name:      "wrong password",
			plaintext: "secret124",
			digest:    digest,
			want:      false,
		},
		{
			name:      "malformed digest is a mismatch, not an error",
			plaintext: "secret123",
			digest:    "not-a-bcrypt-digest",
			want:      false,
		},
		{
			name:      "empty digest",
			plaintext: "secret123",
			digest:    "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.plaintext, tt.digest))
		})
	}
}
