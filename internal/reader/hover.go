package reader

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sourcegraph/lsif-query/internal/protocol"
)

type hoverPayload struct {
	Contents jsoniter.RawMessage `json:"contents"`
}

// markedString covers both the {language, value} marked string and the {kind, value}
// markup content shapes.
type markedString struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// hoverContents decodes result.contents of a hoverResult vertex. The contents may be a
// single marked string, a single markup content object, or a list of marked strings,
// where each marked string is a bare string or a {language, value} pair.
func (d decoder) hoverContents() ([]protocol.MarkedString, error) {
	if len(d.rec.Result) == 0 {
		return nil, d.missing("result")
	}

	var payload hoverPayload
	if err := unmarshaller.Unmarshal(d.rec.Result, &payload); err != nil {
		return nil, d.malformed(errors.Wrap(err, "hover result"))
	}

	raw := bytes.TrimSpace(payload.Contents)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, d.missing("result.contents")
	}

	if raw[0] != '[' {
		content, err := decodeMarkedString(raw)
		if err != nil {
			return nil, d.malformed(err)
		}
		return []protocol.MarkedString{content}, nil
	}

	var parts []jsoniter.RawMessage
	if err := unmarshaller.Unmarshal(raw, &parts); err != nil {
		return nil, d.malformed(errors.Wrap(err, "hover contents"))
	}

	contents := make([]protocol.MarkedString, 0, len(parts))
	for _, part := range parts {
		content, err := decodeMarkedString(bytes.TrimSpace(part))
		if err != nil {
			return nil, d.malformed(err)
		}
		contents = append(contents, content)
	}

	return contents, nil
}

func decodeMarkedString(raw []byte) (protocol.MarkedString, error) {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := unmarshaller.Unmarshal(raw, &s); err != nil {
			return protocol.MarkedString{}, errors.Wrap(err, "hover content")
		}
		return protocol.MarkedString{Value: s}, nil
	}

	var ms markedString
	if err := unmarshaller.Unmarshal(raw, &ms); err != nil {
		return protocol.MarkedString{}, errors.Wrap(err, "hover content")
	}
	return protocol.MarkedString{Language: ms.Language, Value: ms.Value}, nil
}
