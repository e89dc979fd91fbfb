package memory

import (
	"testing"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/event/tests"
)

func TestEventMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
