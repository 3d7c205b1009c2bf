package convert_test

import (
	"testing"

	"github.com/j4587698/tinydb/bson"
	"github.com/j4587698/tinydb/convert"
)

type color int

const (
	colorRed color = iota
	colorGreen
	colorBlue
)

var colorNames = map[color]string{
	colorRed:   "red",
	colorGreen: "green",
	colorBlue:  "blue",
}

var colorByName = map[string]color{
	"red":   colorRed,
	"green": colorGreen,
	"blue":  colorBlue,
}

func TestEnumToBSONDefaultIsInt32(t *testing.T) {
	v := convert.EnumToBSON(colorGreen)
	if v.Kind() != bson.KindInt32 || v.AsInt32() != int32(colorGreen) {
		t.Errorf("EnumToBSON(colorGreen) = %v, want Int32(%d)", v, colorGreen)
	}
}

func TestEnumToBSONStringOptIn(t *testing.T) {
	v, err := convert.EnumToBSONString(colorGreen, colorNames)
	if err != nil {
		t.Fatalf("EnumToBSONString error: %v", err)
	}
	if v.Kind() != bson.KindString || v.AsString() != "green" {
		t.Errorf("EnumToBSONString(colorGreen) = %v, want String(green)", v)
	}
}

func TestConvertEnumRoundTrip(t *testing.T) {
	v := convert.EnumToBSON(colorBlue)
	got, err := convert.ConvertEnum[color](v)
	if err != nil {
		t.Fatalf("ConvertEnum error: %v", err)
	}
	if got != colorBlue {
		t.Errorf("ConvertEnum(EnumToBSON(colorBlue)) = %v, want %v", got, colorBlue)
	}
}

func TestConvertEnumStringRoundTrip(t *testing.T) {
	v, err := convert.EnumToBSONString(colorRed, colorNames)
	if err != nil {
		t.Fatalf("EnumToBSONString error: %v", err)
	}
	got, err := convert.ConvertEnumString(v, colorByName)
	if err != nil {
		t.Fatalf("ConvertEnumString error: %v", err)
	}
	if got != colorRed {
		t.Errorf("ConvertEnumString(EnumToBSONString(colorRed)) = %v, want %v", got, colorRed)
	}
}

func TestConvertEnumStringUnrecognizedLabel(t *testing.T) {
	if _, err := convert.ConvertEnumString(bson.String("purple"), colorByName); err == nil {
		t.Error("ConvertEnumString(unrecognized label) succeeded, want Format error")
	}
}
