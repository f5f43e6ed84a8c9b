package mock

import (
	"github.com/minio/blake2b-simd"
	sha256 "github.com/minio/sha256-simd"

	"github.com/tokenvault/vault-actors/actors/runtime"
)

// HasherFunc replaces the blake2b primitive, for tests that need fixed digests.
type HasherFunc func(data []byte) [32]byte

type syscaller struct {
	Hasher HasherFunc // nil for the real blake2b
}

func (s *syscaller) HashBlake2b(data []byte) [32]byte {
	if s.Hasher != nil {
		return s.Hasher(data)
	}
	return blake2b.Sum256(data)
}

func (s *syscaller) HashSHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

var _ runtime.Syscalls = &syscaller{}
