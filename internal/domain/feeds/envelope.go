package feeds

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// DefaultDocumentVersion is the envelope schema version the remote
// processor currently accepts
const DefaultDocumentVersion = "1.01"

const (
	envelopeRoot       = "AmazonEnvelope"
	envelopeSchemaAttr = "amzn-envelope.xsd"
	xsiNamespace       = "http://www.w3.org/2001/XMLSchema-instance"
)

// EnvelopeHeader carries the fixed header block of every feed document
type EnvelopeHeader struct {
	// DocumentVersion is the envelope schema version; defaults to
	// DefaultDocumentVersion when empty
	DocumentVersion string
	// MerchantID is the seller's merchant identifier on the marketplace
	MerchantID string
}

// EncodeEnvelope serializes a list of record trees into a complete feed
// document: the fixed envelope (header, message type, purge flag) followed
// by one Message element per record with a 1-based MessageID in input order,
// each wrapping a messageType element holding the record's fields.
//
// Records must have been validated with ValidateRecords; on a valid tree the
// encoder does not fail. All text content is escaped by the XML encoder,
// never by the caller. Output is well-formed UTF-8.
func EncodeEnvelope(messageType string, records []*Node, header EnvelopeHeader) (string, error) {
	version := header.DocumentVersion
	if version == "" {
		version = DefaultDocumentVersion
	}

	var buf strings.Builder
	enc := xml.NewEncoder(&buf)

	if err := enc.EncodeToken(xml.ProcInst{
		Target: "xml",
		Inst:   []byte(`version="1.0" encoding="UTF-8"`),
	}); err != nil {
		return "", fmt.Errorf("feeds: encode envelope: %w", err)
	}

	root := xml.StartElement{
		Name: xml.Name{Local: envelopeRoot},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNamespace},
			{Name: xml.Name{Local: "xsi:noNamespaceSchemaLocation"}, Value: envelopeSchemaAttr},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return "", fmt.Errorf("feeds: encode envelope: %w", err)
	}

	if err := encodeHeader(enc, version, header.MerchantID); err != nil {
		return "", err
	}
	if err := encodeTextElement(enc, "MessageType", messageType); err != nil {
		return "", err
	}
	// Purge-and-replace is never issued from this system; a stray "true"
	// here would wipe the seller's entire listing set.
	if err := encodeTextElement(enc, "PurgeAndReplace", "false"); err != nil {
		return "", err
	}

	for i, record := range records {
		if err := encodeMessage(enc, messageType, i+1, record); err != nil {
			return "", err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return "", fmt.Errorf("feeds: encode envelope: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("feeds: encode envelope: %w", err)
	}
	return buf.String(), nil
}

func encodeHeader(enc *xml.Encoder, version, merchantID string) error {
	start := xml.StartElement{Name: xml.Name{Local: "Header"}}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	if err := encodeTextElement(enc, "DocumentVersion", version); err != nil {
		return err
	}
	if err := encodeTextElement(enc, "MerchantIdentifier", merchantID); err != nil {
		return err
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	return nil
}

func encodeMessage(enc *xml.Encoder, messageType string, messageID int, record *Node) error {
	msg := xml.StartElement{Name: xml.Name{Local: "Message"}}
	if err := enc.EncodeToken(msg); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	if err := encodeTextElement(enc, "MessageID", strconv.Itoa(messageID)); err != nil {
		return err
	}
	payload := xml.StartElement{Name: xml.Name{Local: messageType}}
	if err := enc.EncodeToken(payload); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	if err := encodeNode(enc, record); err != nil {
		return err
	}
	if err := enc.EncodeToken(payload.End()); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	if err := enc.EncodeToken(msg.End()); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	return nil
}

// encodeNode recursively encodes a record node: scalars become text
// elements, nodes become nested elements, sequences become repeated sibling
// elements under the field's name.
func encodeNode(enc *xml.Encoder, node *Node) error {
	for _, field := range node.Fields() {
		if err := encodeValue(enc, field.Name, field.Value); err != nil {
			return err
		}
	}
	return nil
}

func encodeValue(enc *xml.Encoder, name string, value Value) error {
	switch v := value.(type) {
	case Scalar:
		return encodeTextElement(enc, name, string(v))
	case *Node:
		start := xml.StartElement{Name: xml.Name{Local: name}}
		if err := enc.EncodeToken(start); err != nil {
			return fmt.Errorf("feeds: encode envelope: %w", err)
		}
		if err := encodeNode(enc, v); err != nil {
			return err
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return fmt.Errorf("feeds: encode envelope: %w", err)
		}
		return nil
	case Repeated:
		for _, item := range v {
			if err := encodeValue(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	default:
		// Unreachable for trees accepted by Validate
		return fmt.Errorf("%w: field %q has unsupported value type %T", ErrInvalidRecordValue, name, value)
	}
}

func encodeTextElement(enc *xml.Encoder, name, text string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("feeds: encode envelope: %w", err)
	}
	return nil
}
