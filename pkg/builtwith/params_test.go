package builtwith

import "testing"

func TestParams_Encode(t *testing.T) {
	var nilBool *bool
	var nilString *string

	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"empty", nil, ""},
		{"all absent", Params{{"A", nil}, {"B", nilBool}, {"C", nilString}}, ""},
		{"string", Params{{"LOOKUP", "a.com"}}, "LOOKUP=a.com"},
		{"keeps order", Params{{"B", "2"}, {"A", "1"}, {"C", "3"}}, "B=2&A=1&C=3"},
		{"drops absent in the middle", Params{{"A", "1"}, {"B", nil}, {"C", "3"}}, "A=1&C=3"},
		{"false kept", Params{{"META", false}}, "META=false"},
		{"false pointer kept", Params{{"META", Bool(false)}}, "META=false"},
		{"zero kept", Params{{"AMOUNT", 0}}, "AMOUNT=0"},
		{"zero pointer kept", Params{{"AMOUNT", Int(0)}}, "AMOUNT=0"},
		{"empty string kept", Params{{"TLD", ""}}, "TLD="},
		{"empty string pointer kept", Params{{"TLD", String("")}}, "TLD="},
		{"true", Params{{"HIDETEXT", true}}, "HIDETEXT=true"},
		{"float", Params{{"X", 1.5}}, "X=1.5"},
		{"int64", Params{{"X", int64(42)}}, "X=42"},
		{"uint", Params{{"X", uint(7)}}, "X=7"},
		{"escaped", Params{{"COMPANY", "Acme & Sons"}}, "COMPANY=Acme+%26+Sons"},
		{"comma escaped", Params{{"TECH", "php,jquery"}}, "TECH=php%2Cjquery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatValue_NamedTypes(t *testing.T) {
	type level int
	type name string
	lv := level(3)

	tests := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{level(2), "2", true},
		{&lv, "3", true},
		{(*level)(nil), "", false},
		{name("x"), "x", true},
	}
	for _, tt := range tests {
		got, ok := formatValue(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("formatValue(%#v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParams_EncodePanicsOnUnsupportedValue(t *testing.T) {
	for _, v := range []any{[]string{"a"}, map[string]int{}, struct{}{}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Encode() with %T value should panic", v)
				}
			}()
			Params{{"X", v}}.Encode()
		}()
	}
}
