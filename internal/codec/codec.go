// Package codec encodes committed document steps for the event bus. The
// encoding is CBOR with Core Deterministic Encoding (RFC 8949 §4.2), so the
// same transaction always produces the same bytes on every peer.
package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/thenoetrevino/pilar/internal/document"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to deterministic CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// EncodeSteps encodes the steps of a committed transaction.
func EncodeSteps(records []document.StepRecord) ([]byte, error) {
	data, err := Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode steps: %w", err)
	}
	return data, nil
}

// DecodeSteps decodes step payloads back into applicable steps.
func DecodeSteps(data []byte) ([]document.Step, error) {
	var records []document.StepRecord
	if err := Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode steps: %w", err)
	}
	steps := make([]document.Step, 0, len(records))
	for _, r := range records {
		step, err := document.StepFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("decode steps: %w", err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}
