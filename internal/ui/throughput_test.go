package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatItemsPerSecond(t *testing.T) {
	assert.Equal(t, "< 0.01 items/sec", FormatItemsPerSecond(0.001))
	assert.Equal(t, "2.30 items/sec", FormatItemsPerSecond(2.3))
}

func TestFormatBytesPerSecond(t *testing.T) {
	assert.Equal(t, "512 B/sec", FormatBytesPerSecond(512))
	assert.Equal(t, "1.50 KB/sec", FormatBytesPerSecond(1536))
	assert.Equal(t, "5.00 MB/sec", FormatBytesPerSecond(5*1024*1024))
	assert.Equal(t, "2.00 GB/sec", FormatBytesPerSecond(2*1024*1024*1024))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.50 KB", FormatBytes(1536))
	assert.Equal(t, "2.00 MB", FormatBytes(2*1024*1024))
	assert.Equal(t, "3.00 GB", FormatBytes(3*1024*1024*1024))
	assert.Equal(t, "1.00 TB", FormatBytes(1024*1024*1024*1024))
}

func TestThroughputCalculator_Update(t *testing.T) {
	calc := NewThroughputCalculator()
	calc.Update(10, 1000)

	assert.Equal(t, int64(10), calc.totalItems)
	assert.Equal(t, int64(1000), calc.totalBytes)
}

func TestThroughputCalculator_Reset(t *testing.T) {
	calc := NewThroughputCalculator()
	calc.Update(10, 1000)
	calc.Reset()

	assert.Equal(t, int64(0), calc.totalItems)
	assert.Equal(t, int64(0), calc.totalBytes)
}
