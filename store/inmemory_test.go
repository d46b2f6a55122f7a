package store

import (
	"testing"

	"go.uber.org/zap"
)

func TestInMemoryStore_Conformance(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore(zap.NewNop())
	defer s.Close()
	testStoreConformance(t, s)
}
