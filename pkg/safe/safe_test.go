package safe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRecovers(t *testing.T) {
	ran := false
	assert.NotPanics(t, func() {
		Run(func() {
			ran = true
			panic("boom")
		})
	})
	assert.True(t, ran)
}

func TestGo(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Go(func() {
		defer wg.Done()
		panic("boom")
	}, "test")
	wg.Wait()
}

func TestStackTraceLimit(t *testing.T) {
	out := stackTrace(2)
	assert.Contains(t, out, "Stack trace:")
	assert.Contains(t, out, "(truncated)")
}
