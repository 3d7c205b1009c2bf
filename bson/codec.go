package bson

import (
	"io"
	"sync"

	"github.com/j4587698/tinydb/logger"
)

// Writer is a stateful wrapper around a ByteSink implementing leave-open
// dispose semantics: once Close/Dispose has run, every further write
// raises ErrAlreadyDisposed, and the underlying sink is closed too unless
// leaveOpen was requested at construction. Safe for concurrent use; a
// single Writer instance should still back only one logical stream at a
// time, mirroring the single-writer discipline of the storage layer this
// is adapted from.
type Writer struct {
	mu        sync.Mutex
	sink      ByteSink
	leaveOpen bool
	disposed  bool
}

// NewWriter wraps sink. leaveOpen is typically sourced from
// config.Config.LeaveOpen.
func NewWriter(sink ByteSink, leaveOpen bool) *Writer {
	return &Writer{sink: sink, leaveOpen: leaveOpen}
}

// WriteDocument writes d to the wrapped sink.
func (w *Writer) WriteDocument(d *Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrAlreadyDisposed
	}
	return WriteDocument(w.sink, d)
}

// WriteArray writes a to the wrapped sink.
func (w *Writer) WriteArray(a *Array) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrAlreadyDisposed
	}
	return WriteArray(w.sink, a)
}

// Close disposes w; it is equivalent to Dispose.
func (w *Writer) Close() error { return w.Dispose() }

// Dispose marks w unusable for further writes. Unless leaveOpen was set at
// construction, the underlying sink is closed too if it implements
// io.Closer. A second call raises ErrAlreadyDisposed.
func (w *Writer) Dispose() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrAlreadyDisposed
	}
	w.disposed = true
	if w.leaveOpen {
		logger.TraceIf("bson", "Writer disposed, leaving sink open")
		return nil
	}
	if closer, ok := w.sink.(io.Closer); ok {
		logger.TraceIf("bson", "Writer disposed, closing sink")
		return closer.Close()
	}
	return nil
}

// Reader is a stateful wrapper around an io.Reader byte source
// implementing the same leave-open dispose semantics as Writer. The full
// payload is buffered into memory on the first read, matching
// DecodeDocument's whole-document contract.
type Reader struct {
	mu        sync.Mutex
	source    io.Reader
	leaveOpen bool
	disposed  bool
}

// NewReader wraps source. leaveOpen is typically sourced from
// config.Config.LeaveOpen.
func NewReader(source io.Reader, leaveOpen bool) *Reader {
	return &Reader{source: source, leaveOpen: leaveOpen}
}

// ReadDocument reads and fully materializes one Document from the wrapped
// source.
func (r *Reader) ReadDocument() (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return nil, ErrAlreadyDisposed
	}
	data, err := io.ReadAll(r.source)
	if err != nil {
		return nil, err
	}
	doc, _, err := DecodeDocument(data)
	return doc, err
}

// Close disposes r; it is equivalent to Dispose.
func (r *Reader) Close() error { return r.Dispose() }

// Dispose marks r unusable for further reads. Unless leaveOpen was set at
// construction, the underlying source is closed too if it implements
// io.Closer. A second call raises ErrAlreadyDisposed.
func (r *Reader) Dispose() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return ErrAlreadyDisposed
	}
	r.disposed = true
	if r.leaveOpen {
		logger.TraceIf("bson", "Reader disposed, leaving source open")
		return nil
	}
	if closer, ok := r.source.(io.Closer); ok {
		logger.TraceIf("bson", "Reader disposed, closing source")
		return closer.Close()
	}
	return nil
}
