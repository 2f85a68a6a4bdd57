package draw

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Slightly below a typical 1500 byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// ChunkWriter accumulates ANSI output for a frame and writes it in chunks for
// optimal network flow (e.g. over SSH). It implements Surface for raw terminals.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// Compile-time check that ChunkWriter implements Surface.
var _ Surface = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all cursor coordinates (for render area centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// render area coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// SetCell writes a single rune at the given cell.
func (cw *ChunkWriter) SetCell(col, row int, r rune) {
	if col < 1 || row < 1 {
		return
	}
	cw.MoveCursor(col, row)
	cw.buf.WriteRune(r)
}

// WriteAt writes a string at a specific position. Runes left of column 1
// are dropped.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	if row < 1 {
		return
	}
	for col < 1 && s != "" {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		col++
	}
	if s == "" {
		return
	}
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// Clear queues a full terminal clear.
func (cw *ChunkWriter) Clear() {
	cw.buf.WriteString("\033[H\033[2J")
}

// Write implements io.Writer so raw escape sequences can be queued.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}
