package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type FormField struct {
	Name  string
	Value string
}

// FormFields keeps the backend-issued form fields in issue order. The order
// is part of the upload contract: the multipart body replays it verbatim,
// with the file payload as the final part. On the wire it is a plain JSON
// object, so both sides need order-preserving codecs.
type FormFields []FormField

func (f FormFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *FormFields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("form fields: expected object, got %v", tok)
	}

	fields := FormFields{}
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := nameTok.(string)
		if !ok {
			return fmt.Errorf("form fields: unexpected key %v", nameTok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return err
		}
		value, ok := valueTok.(string)
		if !ok {
			return fmt.Errorf("form fields: field %q must be a string", name)
		}

		fields = append(fields, FormField{Name: name, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = fields
	return nil
}
