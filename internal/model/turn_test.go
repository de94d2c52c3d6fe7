package model

import (
	"reflect"
	"testing"
)

func TestJSONArray_Value(t *testing.T) {
	var empty JSONArray
	v, err := empty.Value()
	if err != nil || v != nil {
		t.Errorf("Expected nil value for nil array, got %v (err %v)", v, err)
	}

	v, err = JSONArray{"Wakad", "Baner"}.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if got := string(v.([]byte)); got != `["Wakad","Baner"]` {
		t.Errorf("Expected JSON list, got %s", got)
	}
}

func TestJSONArray_Scan(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    JSONArray
		wantErr bool
	}{
		{"null", nil, nil, false},
		{"bytes", []byte(`["Aundh"]`), JSONArray{"Aundh"}, false},
		{"string", `["Wakad","Baner"]`, JSONArray{"Wakad", "Baner"}, false},
		{"unsupported type", 42, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got JSONArray
			err := got.Scan(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
