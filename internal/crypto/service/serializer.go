package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	apperrors "github.com/allisson/aether/internal/errors"
)

const (
	// SerializerJSON selects encoding/json.
	SerializerJSON = "json"

	// SerializerYAML selects gopkg.in/yaml.v3.
	SerializerYAML = "yaml"
)

// NewSerializer returns the serializer registered under name.
func NewSerializer(name string) (Serializer, error) {
	switch name {
	case SerializerJSON, "":
		return NewJSONSerializer(), nil
	case SerializerYAML:
		return NewYAMLSerializer(), nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "unknown serializer %q", name)
	}
}

type jsonSerializer struct{}

// NewJSONSerializer creates a Serializer backed by encoding/json.
func NewJSONSerializer() Serializer {
	return &jsonSerializer{}
}

func (s *jsonSerializer) Name() string { return SerializerJSON }

func (s *jsonSerializer) Marshal(v any) ([]byte, error) {
	if err := checkSerializable(v); err != nil {
		return nil, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		var typeErr *json.UnsupportedTypeError
		var valueErr *json.UnsupportedValueError
		if errors.As(err, &typeErr) || errors.As(err, &valueErr) {
			return nil, apperrors.Wrap(apperrors.ErrUnsupportedType, err.Error())
		}
		return nil, fmt.Errorf("failed to marshal json: %w", err)
	}
	return data, nil
}

func (s *jsonSerializer) Unmarshal(data []byte, out any) error {
	if err := checkTarget(out); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.ErrFormat, err.Error())
	}
	return nil
}

type yamlSerializer struct{}

// NewYAMLSerializer creates a Serializer backed by gopkg.in/yaml.v3.
func NewYAMLSerializer() Serializer {
	return &yamlSerializer{}
}

func (s *yamlSerializer) Name() string { return SerializerYAML }

func (s *yamlSerializer) Marshal(v any) (data []byte, err error) {
	if err := checkSerializable(v); err != nil {
		return nil, err
	}

	// yaml.v3 panics on nested funcs and channels instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = apperrors.Wrapf(apperrors.ErrUnsupportedType, "%v", r)
		}
	}()

	data, err = yaml.Marshal(v)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnsupportedType, err.Error())
	}
	return data, nil
}

func (s *yamlSerializer) Unmarshal(data []byte, out any) error {
	if err := checkTarget(out); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.ErrFormat, err.Error())
	}
	return nil
}

// checkSerializable rejects nil values and kinds no structured text format can represent.
func checkSerializable(v any) error {
	if v == nil {
		return apperrors.Wrap(apperrors.ErrInvalidArgument, "object cannot be nil")
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return apperrors.Wrapf(apperrors.ErrUnsupportedType, "type %s cannot be serialized", t)
	default:
		return nil
	}
}

func checkTarget(out any) error {
	rv := reflect.ValueOf(out)
	if out == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return apperrors.Wrap(apperrors.ErrInvalidArgument, "target must be a non-nil pointer")
	}
	return nil
}
