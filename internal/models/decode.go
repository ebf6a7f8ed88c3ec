package models

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// Decode converts a loosely typed record (as read from a collection file or a request body)
// into one of the model structs.
func Decode(input interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		Result:     out,
		ZeroFields: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
