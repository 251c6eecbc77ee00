package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Count is one key of a Counts object
type Count struct {
	Key   string
	Value int64
}

// Counts is a JSON object of integer counts that keeps its key order
// (workflow order for statuses, roster order for assignees).
type Counts []Count

// Get returns the count for key, zero when absent.
func (c Counts) Get(key string) int64 {
	for _, entry := range c {
		if entry.Key == key {
			return entry.Value
		}
	}
	return 0
}

// Sum adds up every count.
func (c Counts) Sum() int64 {
	var total int64
	for _, entry := range c {
		total += entry.Value
	}
	return total
}

func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(entry.Value, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("counts: expected object, got %v", tok)
	}

	out := Counts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("counts: expected key, got %v", tok)
		}

		var value int64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("counts: %s: %w", key, err)
		}
		out = append(out, Count{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}
