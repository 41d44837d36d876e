package meshseg

import (
	"log"
	"time"
)

// Elapsed runs f and logs its wall-clock duration under name. It wraps
// stages that can dominate runtime on large meshes (shortest-path
// construction, segmentation) so a caller can see where time goes
// without instrumenting the algorithm itself.
func Elapsed(name string, f func()) {
	start := time.Now()
	f()
	log.Printf("%s %.2fs", name, time.Since(start).Seconds())
}
