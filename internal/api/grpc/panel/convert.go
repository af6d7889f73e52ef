package panel

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// Field names of the status and motion structs.
const (
	FieldUnitID    = "unit_id"
	FieldBriefcase = "briefcase"
	FieldSecurity  = "security"
	FieldAlarm     = "alarm"
	FieldPinEdit   = "pin_edit"
	FieldInterval  = "interval"
	FieldLEDs      = "leds"
	FieldLines     = "lines"

	FieldX = "x"
	FieldY = "y"
	FieldZ = "z"
)

var (
	// errMissingField is returned when a struct lacks a required field.
	errMissingField = errors.New("missing field")
	// errFieldType is returned when a struct field has the wrong kind.
	errFieldType = errors.New("wrong field type")
)

// AxesToStruct encodes a motion sample.
func AxesToStruct(axes briefcase.Axes) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldX: structpb.NewNumberValue(float64(axes.X)),
			FieldY: structpb.NewNumberValue(float64(axes.Y)),
			FieldZ: structpb.NewNumberValue(float64(axes.Z)),
		},
	}
}

// AxesFromStruct decodes a motion sample. Every axis must be present.
func AxesFromStruct(s *structpb.Struct) (briefcase.Axes, error) {
	var (
		axes briefcase.Axes
		err  error
	)

	if axes.X, err = intField(s, FieldX); err != nil {
		return briefcase.Axes{}, err
	}

	if axes.Y, err = intField(s, FieldY); err != nil {
		return briefcase.Axes{}, err
	}

	if axes.Z, err = intField(s, FieldZ); err != nil {
		return briefcase.Axes{}, err
	}

	return axes, nil
}

// StatusToStruct encodes a status report.
func StatusToStruct(status *briefcase.Status) *structpb.Struct {
	if status == nil {
		return &structpb.Struct{Fields: map[string]*structpb.Value{}}
	}

	leds := make([]*structpb.Value, 0, len(status.LEDs))
	for _, on := range status.LEDs {
		leds = append(leds, structpb.NewBoolValue(on))
	}

	lines := make([]*structpb.Value, 0, len(status.Lines))
	for _, line := range status.Lines {
		lines = append(lines, structpb.NewStringValue(line))
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldUnitID:    structpb.NewStringValue(status.UnitID),
			FieldBriefcase: structpb.NewStringValue(status.Briefcase.String()),
			FieldSecurity:  structpb.NewStringValue(status.Security.String()),
			FieldAlarm:     structpb.NewStringValue(status.Alarm.String()),
			FieldPinEdit:   structpb.NewStringValue(status.PinEdit.String()),
			FieldInterval:  structpb.NewNumberValue(float64(status.Interval)),
			FieldLEDs:      structpb.NewListValue(&structpb.ListValue{Values: leds}),
			FieldLines:     structpb.NewListValue(&structpb.ListValue{Values: lines}),
		},
	}
}

// StatusFromStruct decodes a status report.
//
//nolint:cyclop // One check per field.
func StatusFromStruct(s *structpb.Struct) (*briefcase.Status, error) {
	var (
		status briefcase.Status
		err    error
	)

	fields := s.GetFields()

	status.UnitID = fields[FieldUnitID].GetStringValue()

	if status.Briefcase, err = briefcase.ParseCaseState(fields[FieldBriefcase].GetStringValue()); err != nil {
		return nil, fmt.Errorf("%s: %w", FieldBriefcase, err)
	}

	if status.Security, err = briefcase.ParseSecurityMode(fields[FieldSecurity].GetStringValue()); err != nil {
		return nil, fmt.Errorf("%s: %w", FieldSecurity, err)
	}

	if status.Alarm, err = briefcase.ParseAlarmState(fields[FieldAlarm].GetStringValue()); err != nil {
		return nil, fmt.Errorf("%s: %w", FieldAlarm, err)
	}

	if status.PinEdit, err = briefcase.ParsePinEditMode(fields[FieldPinEdit].GetStringValue()); err != nil {
		return nil, fmt.Errorf("%s: %w", FieldPinEdit, err)
	}

	interval, err := intField(s, FieldInterval)
	if err != nil {
		return nil, err
	}

	if interval < 0 || interval > math.MaxUint8 {
		return nil, fmt.Errorf("%s: %w", FieldInterval, errFieldType)
	}

	status.Interval = uint8(interval)

	for _, v := range fields[FieldLEDs].GetListValue().GetValues() {
		b, ok := v.GetKind().(*structpb.Value_BoolValue)
		if !ok {
			return nil, fmt.Errorf("%s: %w", FieldLEDs, errFieldType)
		}

		status.LEDs = append(status.LEDs, b.BoolValue)
	}

	for _, v := range fields[FieldLines].GetListValue().GetValues() {
		str, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%s: %w", FieldLines, errFieldType)
		}

		status.Lines = append(status.Lines, str.StringValue)
	}

	return &status, nil
}

// intField reads a whole number field.
func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, errMissingField)
	}

	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%s: %w", name, errFieldType)
	}

	return int(n.NumberValue), nil
}
