package lsp

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var marshaller = jsoniter.ConfigCompatibleWithStandardLibrary

// ReadMessage reads the body of a single Content-Length framed message. Headers other
// than Content-Length are ignored. io.EOF is returned unwrapped when the stream ends
// between messages.
func ReadMessage(r *bufio.Reader) ([]byte, error) {
	contentLength := -1
	for first := true; ; first = false {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF && first && line == "" {
				return nil, io.EOF
			}
			return nil, errors.Wrap(err, "reading header")
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return nil, errors.Errorf("invalid Content-Length %q", value)
		}
		contentLength = n
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, errors.Wrap(err, "reading body")
	}

	return body, nil
}

// WriteMessage marshals the given value and writes it with a Content-Length header.
func WriteMessage(w io.Writer, v interface{}) error {
	body, err := marshaller.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal message")
	}

	frame := make([]byte, 0, len(body)+32)
	frame = append(frame, "Content-Length: "...)
	frame = strconv.AppendInt(frame, int64(len(body)), 10)
	frame = append(frame, "\r\n\r\n"...)
	frame = append(frame, body...)

	if _, err := w.Write(frame); err != nil {
		return errors.Wrap(err, "write message")
	}

	return nil
}

func isNull(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
