package httpclientx

//
// getjson.go - GET a JSON response.
//

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
)

// ErrIsNil indicates that the server returned a literal JSON "null".
var ErrIsNil = errors.New("httpx: nil map, pointer, or slice")

// GetJSON sends a GET request and reads a JSON response.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - config contains the config;
//
// - URL is the URL to use.
//
// This function either returns an error or a valid Output. A literal JSON
// "null" body is an error when Output is a map, pointer, or slice.
func GetJSON[Output any](ctx context.Context, config *Config, URL string) (Output, error) {
	// read the raw body
	rawrespbody, err := GetRaw(ctx, config, URL)

	// handle the case of error
	if err != nil {
		return *new(Output), err
	}

	// parse the response body as JSON
	var output Output
	if err := json.Unmarshal(rawrespbody, &output); err != nil {
		return *new(Output), err
	}

	// avoid returning a nil value to the caller
	switch rv := reflect.ValueOf(output); rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice:
		if rv.IsNil() {
			return *new(Output), ErrIsNil
		}
	}
	return output, nil
}
