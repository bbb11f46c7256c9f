package simulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/kilianp07/solarsim/core/model"
)

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestParsePlants(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    []model.PowerPlant
		errMsg  string
	}{
		{"valid", `[{"name":"a","age":1},{"name":"b","age":0}]`, []model.PowerPlant{{Name: "a", Age: 1}, {Name: "b", Age: 0}}, ""},
		{"empty array", `[]`, []model.PowerPlant{}, ""},
		{"missing age", `[{"name":"a"}]`, nil, MsgInvalidJSONFile},
		{"missing name", `[{"age":3}]`, nil, MsgInvalidJSONFile},
		{"null age", `[{"name":"a","age":null}]`, nil, MsgInvalidJSONFile},
		{"null element", `[null]`, nil, MsgInvalidJSONFile},
		{"object instead of array", `{"name":"a","age":1}`, nil, MsgInvalidJSONFile},
		{"null document", `null`, nil, MsgInvalidJSONFile},
		{"wrong type", `[{"name":"a","age":"old"}]`, nil, MsgInvalidJSONFile},
		{"truncated", `[{"name":"a",`, nil, MsgInvalidJSONFile},
		{"oldest age", `[{"name":"a","age":2147483647}]`, []model.PowerPlant{{Name: "a", Age: MaxAge}}, ""},
		{"age beyond int32", `[{"name":"a","age":2147483648}]`, nil, MsgInvalidJSONFile},
		{"age beyond int64", `[{"name":"a","age":9223372036854775808}]`, nil, MsgInvalidJSONFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePlants(strings.NewReader(tc.payload))
			if tc.errMsg != "" {
				if err == nil || err.Error() != tc.errMsg {
					t.Fatalf("expected %q got %v", tc.errMsg, err)
				}
				var mi *MalformedInputError
				if !errors.As(err, &mi) || mi.Err == nil {
					t.Fatalf("expected MalformedInputError with cause, got %#v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d plants got %d", len(tc.want), len(got))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("plant %d: got %#v want %#v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParsePlants_ReadError(t *testing.T) {
	_, err := ParsePlants(brokenReader{})
	if err == nil || err.Error() != MsgErrorReadingFile {
		t.Fatalf("expected %q got %v", MsgErrorReadingFile, err)
	}
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput in chain")
	}
}
