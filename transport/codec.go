package transport

import (
	"encoding/json"
	"encoding/xml"
)

// Codec serializes request bodies and deserializes response bodies. A
// single codec instance is shared across all requests of a client; the
// reference deployment speaks XML, but the codec is a configuration
// point, not a hard constraint.
type Codec interface {
	// ContentType returns the MIME type sent in Accept and Content-Type.
	ContentType() string
	// Encode serializes a request body.
	Encode(v any) ([]byte, error)
	// Decode deserializes a response body into v.
	Decode(data []byte, v any) error
}

// XMLCodec is the default codec.
type XMLCodec struct{}

func (XMLCodec) ContentType() string { return "application/xml" }

func (XMLCodec) Encode(v any) ([]byte, error) {
	return xml.Marshal(v)
}

func (XMLCodec) Decode(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}

// JSONCodec speaks JSON for deployments that negotiate it instead of XML.
type JSONCodec struct{}

func (JSONCodec) ContentType() string { return "application/json" }

func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
