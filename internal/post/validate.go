package post

import "encoding/json"

// Payload validation is rule-based: each operation declares its fields
// explicitly and every failing field reports an enumerated reason. No
// binding tags, no reflection-driven schema.

const (
	reasonRequired  = "required"
	reasonEmpty     = "must not be empty"
	reasonString    = "must be a string"
	reasonTagList   = "must be an array of strings"
	reasonMalformed = "malformed JSON"
)

// ValidateCreate checks a raw create payload against the create schema:
// title (non-empty string), body (string) and tags (array of strings,
// empty allowed) are all required. On failure the returned error lists
// every failing field; the store is never contacted.
func ValidateCreate(data []byte) (CreatePayload, error) {
	doc, err := decodeObject(data)
	if err != nil {
		return CreatePayload{}, err
	}
	var fields []FieldError
	p := CreatePayload{
		Title: stringField(doc, "title", true, &fields),
		Body:  stringField(doc, "body", true, &fields),
		Tags:  tagsField(doc, "tags", true, &fields),
	}
	if p.Title != nil && *p.Title == "" {
		fields = append(fields, FieldError{Field: "title", Reason: reasonEmpty})
	}
	if len(fields) > 0 {
		return CreatePayload{}, &ValidationError{Fields: fields}
	}
	return p, nil
}

// ValidateUpdate checks a raw merge-update payload: every field is
// optional, but a field that is present must carry the same type the
// create schema demands. An empty object is a valid no-op patch.
func ValidateUpdate(data []byte) (UpdatePayload, error) {
	doc, err := decodeObject(data)
	if err != nil {
		return UpdatePayload{}, err
	}
	var fields []FieldError
	p := UpdatePayload{
		Title: stringField(doc, "title", false, &fields),
		Body:  stringField(doc, "body", false, &fields),
		Tags:  tagsField(doc, "tags", false, &fields),
	}
	if len(fields) > 0 {
		return UpdatePayload{}, &ValidationError{Fields: fields}
	}
	return p, nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "payload", Reason: reasonMalformed}}}
	}
	return doc, nil
}

// stringField extracts a string field, recording a FieldError when the
// field is absent-but-required or carries a non-string value. JSON null
// counts as absent.
func stringField(doc map[string]json.RawMessage, name string, required bool, errs *[]FieldError) *string {
	raw, ok := doc[name]
	if !ok || string(raw) == "null" {
		if required {
			*errs = append(*errs, FieldError{Field: name, Reason: reasonRequired})
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		*errs = append(*errs, FieldError{Field: name, Reason: reasonString})
		return nil
	}
	return &s
}

func tagsField(doc map[string]json.RawMessage, name string, required bool, errs *[]FieldError) *[]string {
	raw, ok := doc[name]
	if !ok || string(raw) == "null" {
		if required {
			*errs = append(*errs, FieldError{Field: name, Reason: reasonRequired})
		}
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		*errs = append(*errs, FieldError{Field: name, Reason: reasonTagList})
		return nil
	}
	if tags == nil {
		tags = []string{}
	}
	return &tags
}
