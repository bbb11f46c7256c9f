package simulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kilianp07/solarsim/core/model"
)

type plantPayload struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

// ParsePlants decodes a JSON array of {name, age} objects. Both fields are
// required and null counts as missing. Unknown fields are ignored. Ages
// above MaxAge do not fit the wire format and are rejected as malformed.
func ParsePlants(r io.Reader) ([]model.PowerPlant, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &MalformedInputError{Msg: MsgErrorReadingFile, Err: err}
	}
	var raw []plantPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedInputError{Msg: MsgInvalidJSONFile, Err: err}
	}
	if raw == nil {
		return nil, &MalformedInputError{Msg: MsgInvalidJSONFile, Err: errors.New("expected a JSON array")}
	}
	plants := make([]model.PowerPlant, len(raw))
	for i, p := range raw {
		switch {
		case p.Name == nil:
			return nil, &MalformedInputError{Msg: MsgInvalidJSONFile, Err: fmt.Errorf("plant %d: missing name", i)}
		case p.Age == nil:
			return nil, &MalformedInputError{Msg: MsgInvalidJSONFile, Err: fmt.Errorf("plant %d: missing age", i)}
		case *p.Age > MaxAge:
			return nil, &MalformedInputError{Msg: MsgInvalidJSONFile, Err: fmt.Errorf("plant %d: age %d out of range", i, *p.Age)}
		}
		plants[i] = model.PowerPlant{Name: *p.Name, Age: *p.Age}
	}
	return plants, nil
}
