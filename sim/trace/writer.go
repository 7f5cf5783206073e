package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Extension is appended to trace output paths that lack it.
const Extension = ".jsonl.zst"

// JSONLZstdWriter streams records as zstd-compressed JSON lines.
type JSONLZstdWriter struct {
	f   io.Closer // nil when wrapping a caller-owned writer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewJSONLZstdWriter compresses into w. Closing the writer flushes and closes
// the encoder but not w.
func NewJSONLZstdWriter(w io.Writer) (*JSONLZstdWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &JSONLZstdWriter{enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

// CreateJSONLZstdFile creates (or truncates) path, adding Extension if missing.
func CreateJSONLZstdFile(path string) (*JSONLZstdWriter, string, error) {
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, "", err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, "", err
	}
	w, err := NewJSONLZstdWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, "", err
	}
	w.f = f
	return w, path, nil
}

func (w *JSONLZstdWriter) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// WriteTrace writes every move record of st in order.
func (w *JSONLZstdWriter) WriteTrace(st *SimulationTrace) error {
	for i, m := range st.Moves {
		if err := w.Write(m); err != nil {
			return fmt.Errorf("writing move record %d: %w", i, err)
		}
	}
	return nil
}

func (w *JSONLZstdWriter) Close() error {
	var err1 error
	if w.w != nil {
		err1 = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if err := w.enc.Close(); err1 == nil {
			err1 = err
		}
		w.enc = nil
	}
	if w.f != nil {
		if err := w.f.Close(); err1 == nil {
			err1 = err
		}
		w.f = nil
	}
	return err1
}

// ReadMoves decodes a stream written by JSONLZstdWriter.
func ReadMoves(r io.Reader) ([]MoveRecord, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []MoveRecord
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var m MoveRecord
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, fmt.Errorf("decoding move record %d: %w", len(out), err)
		}
		out = append(out, m)
	}
	return out, sc.Err()
}
