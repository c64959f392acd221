package filterquery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

func sortedExtraKeys(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case string:
		return writeJSONString(buf, val)
	case []string:
		buf.WriteByte('[')
		for i, s := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, s); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return fmt.Errorf("unsupported query value type %T", v)
	}
}
