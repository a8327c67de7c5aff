package term

import (
	"bytes"
	"io"
)

// Queue collects commands and delivers them to a sink in one write.
//
// A Queue is not safe for concurrent use.
type Queue struct {
	sink io.Writer
	cmds []Command
	// Reused across flushes.
	buf bytes.Buffer
}

// NewQueue returns a Queue that writes to w.
func NewQueue(w io.Writer) *Queue {
	return &Queue{sink: w}
}

// Queue appends commands to the queue and returns the receiver, so that calls
// can be chained. Nothing is written until Flush.
func (q *Queue) Queue(cmds ...Command) *Queue {
	q.cmds = append(q.cmds, cmds...)
	return q
}

// Len returns the number of queued commands.
func (q *Queue) Len() int { return len(q.cmds) }

// Flush encodes all queued commands in order and writes them to the sink with
// a single Write call. The queue is emptied even if the write fails; bytes
// that the sink accepted are not taken back. Flushing an empty queue writes
// nothing.
func (q *Queue) Flush() error {
	if len(q.cmds) == 0 {
		return nil
	}
	q.buf.Reset()
	for _, cmd := range q.cmds {
		q.buf.WriteString(Encode(cmd))
	}
	clear(q.cmds)
	q.cmds = q.cmds[:0]

	n, err := q.sink.Write(q.buf.Bytes())
	if err == nil && n < q.buf.Len() {
		err = io.ErrShortWrite
	}
	return err
}

// Execute queues the commands and flushes the queue.
func (q *Queue) Execute(cmds ...Command) error {
	return q.Queue(cmds...).Flush()
}
