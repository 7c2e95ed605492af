package memory_test

import (
	"testing"

	"github.com/aretw0/portico/pkg/adapters/memory"
	"github.com/aretw0/portico/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunDraftStoreContract(t, memory.NewStore())
}
