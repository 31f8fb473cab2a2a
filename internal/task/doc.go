// Package task runs batches of independent work items on a bounded pool of
// worker goroutines fed from a buffered queue.
package task
