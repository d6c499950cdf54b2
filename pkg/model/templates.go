package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned for taxonomy types the editor cannot create or load.
var ErrUnsupportedType = errors.New("unsupported object type")

// Standard palette indexes used by the templates.
const (
	ColourBlack  Colour = 0
	ColourWhite  Colour = 1
	ColourGreen  Colour = 2
	ColourSilver Colour = 7
	ColourGrey   Colour = 8
	ColourBlue   Colour = 9
)

// Default returns the template attributes for a new object of type t.
func Default(t ObjectType) (Attributes, error) {
	switch t {
	case WorkingSet:
		return &WorkingSetAttrs{BackgroundColour: ColourWhite, Selectable: true, Languages: []string{"en"}}, nil
	case DataMask:
		return &DataMaskAttrs{BackgroundColour: ColourWhite}, nil
	case AlarmMask:
		return &AlarmMaskAttrs{BackgroundColour: ColourWhite, Priority: 1, AcousticSignal: 3}, nil
	case Container:
		return &ContainerAttrs{Width: 200, Height: 200}, nil
	case SoftKeyMask:
		return &SoftKeyMaskAttrs{BackgroundColour: ColourWhite}, nil
	case Key:
		return &KeyAttrs{BackgroundColour: ColourSilver}, nil
	case Button:
		return &ButtonAttrs{Width: 100, Height: 40, BackgroundColour: ColourSilver, BorderColour: ColourBlack}, nil
	case InputBoolean:
		return &InputBooleanAttrs{BackgroundColour: ColourWhite, Width: 32, Enabled: true}, nil
	case InputString:
		return &InputStringAttrs{Width: 150, Height: 32, BackgroundColour: ColourWhite, Enabled: true}, nil
	case InputNumber:
		return &InputNumberAttrs{Width: 100, Height: 32, BackgroundColour: ColourWhite, MaxValue: 100, Scale: 1, Enabled: true}, nil
	case InputList:
		return &InputListAttrs{Width: 150, Height: 32, Enabled: true}, nil
	case OutputString:
		return &OutputStringAttrs{Width: 150, Height: 32, BackgroundColour: ColourWhite, Value: "Text"}, nil
	case OutputNumber:
		return &OutputNumberAttrs{Width: 100, Height: 32, BackgroundColour: ColourWhite, Scale: 1}, nil
	case OutputLine:
		return &OutputLineAttrs{Width: 100, Height: 1}, nil
	case OutputRectangle:
		return &OutputRectangleAttrs{Width: 100, Height: 50}, nil
	case OutputEllipse:
		return &OutputEllipseAttrs{Width: 100, Height: 100, EndAngle: 180}, nil
	case OutputPolygon:
		return &OutputPolygonAttrs{Width: 100, Height: 100, Points: []Point{{0, 100}, {50, 0}, {100, 100}}}, nil
	case OutputMeter:
		return &OutputMeterAttrs{
			Width: 100, NeedleColour: ColourBlack, ArcAndTickColour: ColourBlack,
			DrawArc: true, DrawBorder: true, DrawTicks: true, DeflectionClockwise: true,
			NrOfTicks: 6, StartAngle: 0, EndAngle: 180, MaxValue: 100,
		}, nil
	case OutputLinearBarGraph:
		return &OutputLinearBarGraphAttrs{
			Width: 40, Height: 100, Colour: ColourGreen, TargetLineColour: ColourBlack,
			DrawBorder: true, NrOfTicks: 5, MaxValue: 100,
		}, nil
	case OutputArchedBarGraph:
		return &OutputArchedBarGraphAttrs{
			Width: 100, Height: 100, Colour: ColourGreen, TargetLineColour: ColourBlack,
			DrawBorder: true, DeflectionClockwise: true, StartAngle: 0, EndAngle: 180,
			BarGraphWidth: 10, MaxValue: 100,
		}, nil
	case PictureGraphic:
		return &PictureGraphicAttrs{Width: 64, ActualWidth: 64, ActualHeight: 64, Format: 2}, nil
	case NumberVariable:
		return &NumberVariableAttrs{}, nil
	case StringVariable:
		return &StringVariableAttrs{}, nil
	case FontAttributes:
		return &FontAttributesAttrs{FontColour: ColourBlack, FontSize: 2}, nil
	case LineAttributes:
		return &LineAttributesAttrs{LineColour: ColourBlack, LineWidth: 1, LineArt: 0xFFFF}, nil
	case FillAttributes:
		return &FillAttributesAttrs{FillType: 2, FillColour: ColourWhite}, nil
	case InputAttributes:
		return &InputAttributesAttrs{}, nil
	case ObjectPointer:
		return &ObjectPointerAttrs{}, nil
	case Macro:
		return &MacroAttrs{}, nil
	case AuxiliaryFunctionType1:
		return &AuxiliaryFunctionType1Attrs{BackgroundColour: ColourWhite}, nil
	case AuxiliaryInputType1:
		return &AuxiliaryInputType1Attrs{BackgroundColour: ColourWhite, InputID: 1}, nil
	case AuxiliaryFunctionType2:
		return &AuxiliaryFunctionType2Attrs{BackgroundColour: ColourWhite}, nil
	case AuxiliaryInputType2:
		return &AuxiliaryInputType2Attrs{BackgroundColour: ColourWhite}, nil
	case AuxiliaryControlDesignatorType2:
		return &AuxiliaryControlDesignatorType2Attrs{}, nil
	case WindowMask:
		return &WindowMaskAttrs{Width: 1, Height: 1, BackgroundColour: ColourWhite, Available: true}, nil
	case KeyGroup:
		return &KeyGroupAttrs{Available: true}, nil
	case GraphicsContext:
		return &GraphicsContextAttrs{
			ViewportWidth: 100, ViewportHeight: 100, CanvasWidth: 100, CanvasHeight: 100,
			ViewportZoom: 1, ForegroundColour: ColourBlack, BackgroundColour: ColourWhite,
		}, nil
	case OutputList:
		return &OutputListAttrs{Width: 150, Height: 32}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// DecodeAttributes parses the JSON form of a variant. Fields that are absent keep
// their template value.
func DecodeAttributes(t ObjectType, data []byte) (Attributes, error) {
	attrs, err := Default(t)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return attrs, nil
	}
	if err := json.Unmarshal(data, attrs); err != nil {
		return nil, fmt.Errorf("failed to decode %s attributes: %w", t, err)
	}
	return attrs, nil
}

// EncodeAttributes returns the JSON form of a variant.
func EncodeAttributes(attrs Attributes) ([]byte, error) {
	data, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s attributes: %w", attrs.Type(), err)
	}
	return data, nil
}
