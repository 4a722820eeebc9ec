package pipeline_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Every test must leave no verification goroutines behind once Run returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
