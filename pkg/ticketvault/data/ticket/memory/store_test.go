package memory

import (
	"testing"

	"github.com/ticketvault/ticketvault-server/pkg/ticketvault/data/ticket/tests"
)

func TestTicketMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
