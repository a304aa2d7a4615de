package prop

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The wire form is a JSON-safe structural mirror:
//
//	{id, type:{id}, value?, defaultValue?, metadata?, constraints?, children?}
//
// Types are serialized by id only; expanding them would chase the
// self-referential meta-type graph forever. Expression values appear
// verbatim as nested wire objects; their type reference naming one of the
// three expression kinds is the discriminator on decode, so a plain map
// payload that merely carries id/type keys stays a map. Parent links are
// not part of the wire form; structure is re-derived on decode.

func (p *Property) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"id":`)
	if err := writeJSON(&buf, p.ID); err != nil {
		return nil, err
	}
	buf.WriteString(`,"type":{"id":`)
	typeID := ""
	if p.Type != nil {
		typeID = p.Type.ID
	}
	if err := writeJSON(&buf, typeID); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	if p.Value != nil {
		buf.WriteString(`,"value":`)
		if err := writeJSON(&buf, p.Value); err != nil {
			return nil, err
		}
	}
	if p.Default != nil {
		buf.WriteString(`,"defaultValue":`)
		if err := writeJSON(&buf, p.Default); err != nil {
			return nil, err
		}
	}
	if err := writeMap(&buf, "metadata", p.Metadata); err != nil {
		return nil, err
	}
	if err := writeMap(&buf, "constraints", p.Constraints); err != nil {
		return nil, err
	}
	if err := writeMap(&buf, "children", p.Children); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	d, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(d)
	return nil
}

func writeMap(buf *bytes.Buffer, field string, m *Map) error {
	if m.Len() == 0 {
		return nil
	}
	fmt.Fprintf(buf, `,%q:{`, field)
	first := true
	var err error
	m.Each(func(key string, p *Property) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err = writeJSON(buf, key); err != nil {
			return false
		}
		buf.WriteByte(':')
		err = writeJSON(buf, p)
		return err == nil
	})
	if err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func (p *Property) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	return p.decodeObject(dec)
}

func (p *Property) decodeObject(dec *json.Decoder) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		switch key {
		case "id":
			if err := dec.Decode(&p.ID); err != nil {
				return err
			}
		case "type":
			tid, err := decodeTypeRef(dec)
			if err != nil {
				return err
			}
			if bt := bootstrapByID[tid]; bt != nil {
				p.Type = bt
			} else {
				p.Type = &Property{ID: tid, Type: UserType}
			}
		case "value":
			v, err := decodeValue(dec)
			if err != nil {
				return err
			}
			p.Value = v
		case "defaultValue":
			v, err := decodeValue(dec)
			if err != nil {
				return err
			}
			p.Default = v
		case "metadata":
			m, err := decodeMap(dec)
			if err != nil {
				return err
			}
			p.Metadata = m
		case "constraints":
			m, err := decodeMap(dec)
			if err != nil {
				return err
			}
			p.Constraints = m
		case "children":
			m, err := decodeMap(dec)
			if err != nil {
				return err
			}
			p.Children = m
		default:
			// unknown fields are skipped, not errors
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("property without id")
	}
	if p.Type == nil {
		return fmt.Errorf("property %q without type", p.ID)
	}
	p.normalize()
	return nil
}

// normalize repairs representation details the wire form flattens: the
// segment list of a reference comes back []string, not []any.
func (p *Property) normalize() {
	if p.Type != ReferenceType {
		return
	}
	raw, ok := p.Value.([]any)
	if !ok {
		return
	}
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		str, ok := s.(string)
		if !ok {
			return
		}
		segs = append(segs, str)
	}
	p.Value = segs
}

func decodeTypeRef(dec *json.Decoder) (string, error) {
	var ref struct {
		ID string `json:"id"`
	}
	if err := dec.Decode(&ref); err != nil {
		return "", err
	}
	if ref.ID == "" {
		return "", fmt.Errorf("type reference without id")
	}
	return ref.ID, nil
}

func decodeMap(dec *json.Decoder) (*Map, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	res := NewMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected map key, got %v", tok)
		}
		child := &Property{}
		if err := child.decodeObject(dec); err != nil {
			return nil, err
		}
		res.Set(key, child)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return res, nil
}

// decodeValue decodes a payload. An object carrying the wire form of an
// expression decodes as a nested *Property so un-evaluated expression
// substructure survives the round trip; anything else decodes as plain
// data.
func decodeValue(dec *json.Decoder) (any, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return decodeRawValue(raw)
}

func decodeRawValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' && isPropertyShaped(trimmed) {
		child := &Property{}
		if err := json.Unmarshal(trimmed, child); err != nil {
			return nil, err
		}
		return child, nil
	}
	var v any
	d := json.NewDecoder(bytes.NewReader(trimmed))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// isPropertyShaped reports whether raw is the wire form of a
// value-embedded Property. Only expressions appear as payloads, so the
// object must carry a non-empty id, a type naming one of the three
// expression kinds, and no keys outside the wire form. Everything else is
// plain data, whatever its shape.
func isPropertyShaped(raw []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for key := range fields {
		switch key {
		case "id", "type", "value", "defaultValue", "metadata", "constraints", "children":
		default:
			return false
		}
	}
	var shape struct {
		ID   string `json:"id"`
		Type struct {
			ID string `json:"id"`
		} `json:"type"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return false
	}
	if shape.ID == "" {
		return false
	}
	switch shape.Type.ID {
	case LiteralType.ID, ReferenceType.ID, CallType.ID:
		return true
	}
	return false
}

func expectDelim(dec *json.Decoder, d json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	got, ok := tok.(json.Delim)
	if !ok || got != d {
		return fmt.Errorf("expected %q, got %v", d, tok)
	}
	return nil
}
