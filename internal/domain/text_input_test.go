package domain

import (
	"encoding/json"
	"testing"
)

func TestTextInput_Coerces(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"tema":"ventas"}`, "ventas"},
		{"escaped string", `{"tema":"a\"b"}`, `a"b`},
		{"absent", `{}`, ""},
		{"null", `{"tema":null}`, ""},
		{"integer", `{"tema":7}`, "7"},
		{"float", `{"tema":1.5}`, "1.5"},
		{"bool", `{"tema":true}`, "true"},
		{"object", `{"tema":{ "a" : 1 }}`, `{"a":1}`},
		{"array", `{"tema":[1, "x"]}`, `[1,"x"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var env struct {
				Tema TextInput `json:"tema"`
			}
			if err := json.Unmarshal([]byte(tc.body), &env); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := env.Tema.String(); got != tc.want {
				t.Fatalf("got %q; want %q", got, tc.want)
			}
		})
	}
}

func TestTextInput_MalformedJSONStillFails(t *testing.T) {
	var env struct {
		Tema TextInput `json:"tema"`
	}
	if err := json.Unmarshal([]byte(`{"tema":}`), &env); err == nil {
		t.Fatalf("expected syntax error")
	}
}
