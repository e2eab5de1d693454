package moneymanager

import (
	"encoding/json"
	"testing"
)

func TestMoneyFormat(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{m(1234.5), "$1,234.50"},
		{m(0.125), "$0.13"},
		{m(0), "$0.00"},
	}
	for _, tc := range testCases {
		if got := tc.m.Format("USD"); got != tc.want {
			t.Errorf("%v.Format(USD) = %q, want %q", tc.m, got, tc.want)
		}
	}
	if got := m(0).SignedFormat("USD"); got != "-" {
		t.Errorf("SignedFormat(0) = %q, want \"-\"", got)
	}
	if got := m(2).SignedFormat("USD"); got != "+$2.00" {
		t.Errorf("SignedFormat(2) = %q, want \"+$2.00\"", got)
	}
}

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{"12.50", m(12.5), false},
		{" 7 ", m(7), false},
		{"-3.2", m(-3.2), false},
		{"$12", Money{}, true},
		{"1,000", Money{}, true},
		{"", Money{}, true},
	}
	for _, tc := range testCases {
		got, err := ParseMoney(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMoney(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseMoney(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	testCases := []struct {
		in   string
		want Money
		out  string
	}{
		{`12.5`, m(12.5), `12.5`},
		{`"12.50"`, m(12.5), `12.5`},
		{`null`, m(0), `0`},
		{`1e2`, m(100), `100`},
	}
	for _, tc := range testCases {
		var got Money
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, got, tc.want)
		}
		out, err := json.Marshal(got)
		if err != nil || string(out) != tc.out {
			t.Errorf("Marshal(%v) = %s, %v, want %s", got, out, err, tc.out)
		}
	}
	var bad Money
	if err := json.Unmarshal([]byte(`"twelve"`), &bad); err == nil {
		t.Errorf("Unmarshal(\"twelve\") succeeded")
	}
}
