package requests

import (
	"encoding/json"
)

// Serializer encodes request bodies.
type Serializer interface {
	Marshal(v any) ([]byte, error)
	ContentType() string
}

// JSONSerializer is the default body serializer.
type JSONSerializer struct{}

func (JSONSerializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONSerializer) ContentType() string {
	return "application/json"
}

// SerializerFunc adapts a marshal function and its content type to Serializer.
func SerializerFunc(contentType string, marshal func(v any) ([]byte, error)) Serializer {
	return funcSerializer{contentType: contentType, marshal: marshal}
}

type funcSerializer struct {
	contentType string
	marshal     func(v any) ([]byte, error)
}

func (s funcSerializer) Marshal(v any) ([]byte, error) {
	return s.marshal(v)
}

func (s funcSerializer) ContentType() string {
	return s.contentType
}
