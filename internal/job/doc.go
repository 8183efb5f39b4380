// Package job runs background work off the request path. A buffered Queue
// feeds a fixed WorkerPool; Runner ties the two together and owns their
// lifecycle. Jobs are held only in memory and are lost on restart.
package job
