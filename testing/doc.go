// Package testing provides test utilities for the oasis library.
//
// It follows Go's convention of a dedicated testing-helper package
// (similar to net/http/httptest) and currently offers an embedded NATS
// server for worker integration tests plus a testing.T-backed logger.
//
// Example usage:
//
//	import (
//	    "testing"
//	    oasistest "github.com/Egglessbonek/project-oasis/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := oasistest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
