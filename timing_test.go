package meshseg

import "testing"

func TestElapsedRunsFExactlyOnce(t *testing.T) {
	calls := 0
	Elapsed("test", func() {
		calls++
	})
	if calls != 1 {
		t.Fatalf("expected f to run exactly once, ran %d times", calls)
	}
}
