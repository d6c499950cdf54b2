package model

import "slices"

// Colour is an index into the 256-entry VT palette.
type Colour = uint8

// Point is a polygon vertex relative to the polygon origin.
type Point struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

// Justification aligns text inside a field.
type Justification struct {
	Horizontal uint8 `json:"horizontal"` // 0 left, 1 middle, 2 right
	Vertical   uint8 `json:"vertical"`   // 0 top, 1 middle, 2 bottom
}

// TextOptions applies to string fields.
type TextOptions struct {
	Transparent  bool `json:"transparent,omitempty"`
	AutoWrap     bool `json:"auto_wrap,omitempty"`
	WrapOnHyphen bool `json:"wrap_on_hyphen,omitempty"`
}

// NumberOptions applies to number fields.
type NumberOptions struct {
	Transparent         bool `json:"transparent,omitempty"`
	DisplayLeadingZeros bool `json:"display_leading_zeros,omitempty"`
	DisplayZeroAsBlank  bool `json:"display_zero_as_blank,omitempty"`
	Truncate            bool `json:"truncate,omitempty"`
}

// ButtonOptions controls button behaviour and look.
type ButtonOptions struct {
	Latchable             bool `json:"latchable,omitempty"`
	Latched               bool `json:"latched,omitempty"`
	SuppressBorder        bool `json:"suppress_border,omitempty"`
	TransparentBackground bool `json:"transparent_background,omitempty"`
	Disabled              bool `json:"disabled,omitempty"`
	NoBorder              bool `json:"no_border,omitempty"`
}

// FontStyle bits of a font attributes object.
type FontStyle struct {
	Bold           bool `json:"bold,omitempty"`
	CrossedOut     bool `json:"crossed_out,omitempty"`
	Underlined     bool `json:"underlined,omitempty"`
	Italic         bool `json:"italic,omitempty"`
	Inverted       bool `json:"inverted,omitempty"`
	Flashing       bool `json:"flashing,omitempty"`
	FlashingHidden bool `json:"flashing_hidden,omitempty"`
	Proportional   bool `json:"proportional,omitempty"`
}

// AuxFunctionAttributes of auxiliary type 2 functions and inputs.
type AuxFunctionAttributes struct {
	FunctionType     uint8 `json:"function_type"` // 0..15
	Critical         bool  `json:"critical,omitempty"`
	Restricted       bool  `json:"restricted,omitempty"`
	SingleAssignment bool  `json:"single_assignment,omitempty"`
}

// MacroCommand is one encoded command of a macro.
type MacroCommand struct {
	Code   uint8   `json:"code"`
	Params []uint8 `json:"params,omitempty"`
}

type WorkingSetAttrs struct {
	BackgroundColour Colour   `json:"background_colour"`
	Selectable       bool     `json:"selectable"`
	Languages        []string `json:"languages,omitempty"`
}

type DataMaskAttrs struct {
	BackgroundColour Colour `json:"background_colour"`
}

type AlarmMaskAttrs struct {
	BackgroundColour Colour `json:"background_colour"`
	Priority         uint8  `json:"priority"`        // 0 high, 1 medium, 2 low
	AcousticSignal   uint8  `json:"acoustic_signal"` // 0 highest .. 3 none
}

type ContainerAttrs struct {
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
	Hidden bool   `json:"hidden,omitempty"`
}

type SoftKeyMaskAttrs struct {
	BackgroundColour Colour `json:"background_colour"`
}

type KeyAttrs struct {
	BackgroundColour Colour `json:"background_colour"`
	KeyCode          uint8  `json:"key_code"`
}

type ButtonAttrs struct {
	Width            uint16        `json:"width"`
	Height           uint16        `json:"height"`
	BackgroundColour Colour        `json:"background_colour"`
	BorderColour     Colour        `json:"border_colour"`
	KeyCode          uint8         `json:"key_code"`
	Options          ButtonOptions `json:"options"`
}

type InputBooleanAttrs struct {
	BackgroundColour Colour `json:"background_colour"`
	Width            uint16 `json:"width"`
	Value            bool   `json:"value"`
	Enabled          bool   `json:"enabled"`
}

type InputStringAttrs struct {
	Width            uint16        `json:"width"`
	Height           uint16        `json:"height"`
	BackgroundColour Colour        `json:"background_colour"`
	Options          TextOptions   `json:"options"`
	Justification    Justification `json:"justification"`
	Value            string        `json:"value"`
	Enabled          bool          `json:"enabled"`
}

type InputNumberAttrs struct {
	Width            uint16        `json:"width"`
	Height           uint16        `json:"height"`
	BackgroundColour Colour        `json:"background_colour"`
	Options          NumberOptions `json:"options"`
	Value            uint32        `json:"value"`
	MinValue         uint32        `json:"min_value"`
	MaxValue         uint32        `json:"max_value"`
	Offset           int32         `json:"offset"`
	Scale            float32       `json:"scale"`
	NrOfDecimals     uint8         `json:"nr_of_decimals"`
	Exponential      bool          `json:"exponential,omitempty"`
	Justification    Justification `json:"justification"`
	Enabled          bool          `json:"enabled"`
	RealTimeEditing  bool          `json:"real_time_editing,omitempty"`
}

type InputListAttrs struct {
	Width           uint16 `json:"width"`
	Height          uint16 `json:"height"`
	Value           uint8  `json:"value"`
	Enabled         bool   `json:"enabled"`
	RealTimeEditing bool   `json:"real_time_editing,omitempty"`
}

type OutputStringAttrs struct {
	Width            uint16        `json:"width"`
	Height           uint16        `json:"height"`
	BackgroundColour Colour        `json:"background_colour"`
	Options          TextOptions   `json:"options"`
	Justification    Justification `json:"justification"`
	Value            string        `json:"value"`
}

type OutputNumberAttrs struct {
	Width            uint16        `json:"width"`
	Height           uint16        `json:"height"`
	BackgroundColour Colour        `json:"background_colour"`
	Options          NumberOptions `json:"options"`
	Value            uint32        `json:"value"`
	Offset           int32         `json:"offset"`
	Scale            float32       `json:"scale"`
	NrOfDecimals     uint8         `json:"nr_of_decimals"`
	Exponential      bool          `json:"exponential,omitempty"`
	Justification    Justification `json:"justification"`
}

type OutputLineAttrs struct {
	Width         uint16 `json:"width"`
	Height        uint16 `json:"height"`
	LineDirection uint8  `json:"line_direction"` // 0 top-left to bottom-right, 1 bottom-left to top-right
}

type OutputRectangleAttrs struct {
	Width           uint16 `json:"width"`
	Height          uint16 `json:"height"`
	LineSuppression uint8  `json:"line_suppression"` // bit 0 top, 1 right, 2 bottom, 3 left
}

type OutputEllipseAttrs struct {
	Width       uint16 `json:"width"`
	Height      uint16 `json:"height"`
	EllipseType uint8  `json:"ellipse_type"` // 0 closed, 1 open, 2 closed segment, 3 closed section
	StartAngle  uint8  `json:"start_angle"`  // 2 degree steps, 0..180
	EndAngle    uint8  `json:"end_angle"`
}

type OutputPolygonAttrs struct {
	Width       uint16  `json:"width"`
	Height      uint16  `json:"height"`
	PolygonType uint8   `json:"polygon_type"` // 0 convex, 1 non-convex, 2 complex, 3 open
	Points      []Point `json:"points"`
}

type OutputMeterAttrs struct {
	Width               uint16 `json:"width"`
	NeedleColour        Colour `json:"needle_colour"`
	BorderColour        Colour `json:"border_colour"`
	ArcAndTickColour    Colour `json:"arc_and_tick_colour"`
	DrawArc             bool   `json:"draw_arc"`
	DrawBorder          bool   `json:"draw_border"`
	DrawTicks           bool   `json:"draw_ticks"`
	DeflectionClockwise bool   `json:"deflection_clockwise"`
	NrOfTicks           uint8  `json:"nr_of_ticks"`
	StartAngle          uint8  `json:"start_angle"`
	EndAngle            uint8  `json:"end_angle"`
	MinValue            uint16 `json:"min_value"`
	MaxValue            uint16 `json:"max_value"`
	Value               uint16 `json:"value"`
}

type OutputLinearBarGraphAttrs struct {
	Width            uint16 `json:"width"`
	Height           uint16 `json:"height"`
	Colour           Colour `json:"colour"`
	TargetLineColour Colour `json:"target_line_colour"`
	DrawBorder       bool   `json:"draw_border"`
	DrawTargetLine   bool   `json:"draw_target_line"`
	DrawTicks        bool   `json:"draw_ticks"`
	LineOnly         bool   `json:"line_only,omitempty"` // bar drawn as a line instead of filled
	Horizontal       bool   `json:"horizontal,omitempty"`
	GrowNegative     bool   `json:"grow_negative,omitempty"` // grows left or down
	NrOfTicks        uint8  `json:"nr_of_ticks"`
	MinValue         uint16 `json:"min_value"`
	MaxValue         uint16 `json:"max_value"`
	Value            uint16 `json:"value"`
	TargetValue      uint16 `json:"target_value"`
}

type OutputArchedBarGraphAttrs struct {
	Width               uint16 `json:"width"`
	Height              uint16 `json:"height"`
	Colour              Colour `json:"colour"`
	TargetLineColour    Colour `json:"target_line_colour"`
	DrawBorder          bool   `json:"draw_border"`
	DrawTargetLine      bool   `json:"draw_target_line"`
	LineOnly            bool   `json:"line_only,omitempty"`
	DeflectionClockwise bool   `json:"deflection_clockwise"`
	StartAngle          uint8  `json:"start_angle"`
	EndAngle            uint8  `json:"end_angle"`
	BarGraphWidth       uint16 `json:"bar_graph_width"`
	MinValue            uint16 `json:"min_value"`
	MaxValue            uint16 `json:"max_value"`
	Value               uint16 `json:"value"`
	TargetValue         uint16 `json:"target_value"`
}

type PictureGraphicAttrs struct {
	Width              uint16 `json:"width"`
	ActualWidth        uint16 `json:"actual_width"`
	ActualHeight       uint16 `json:"actual_height"`
	Format             uint8  `json:"format"` // 0 monochrome, 1 4-bit, 2 8-bit
	Transparent        bool   `json:"transparent,omitempty"`
	Flashing           bool   `json:"flashing,omitempty"`
	RunLengthEncoded   bool   `json:"run_length_encoded,omitempty"`
	TransparencyColour Colour `json:"transparency_colour"`
	Data               []byte `json:"data,omitempty"`
}

type NumberVariableAttrs struct {
	Value uint32 `json:"value"`
}

type StringVariableAttrs struct {
	Value string `json:"value"`
}

type FontAttributesAttrs struct {
	FontColour Colour    `json:"font_colour"`
	FontSize   uint8     `json:"font_size"` // 0 (6x8) .. 14 (128x192)
	FontType   uint8     `json:"font_type"` // 0 ISO 8859-1 .. 7, 255 proprietary
	FontStyle  FontStyle `json:"font_style"`
}

type LineAttributesAttrs struct {
	LineColour Colour `json:"line_colour"`
	LineWidth  uint8  `json:"line_width"`
	LineArt    uint16 `json:"line_art"`
}

type FillAttributesAttrs struct {
	FillType   uint8  `json:"fill_type"` // 0 none, 1 line colour, 2 fill colour, 3 pattern
	FillColour Colour `json:"fill_colour"`
}

type InputAttributesAttrs struct {
	ValidationType   uint8  `json:"validation_type"` // 0 valid characters, 1 invalid characters
	ValidationString string `json:"validation_string"`
}

type ObjectPointerAttrs struct{}

type MacroAttrs struct {
	Commands []MacroCommand `json:"commands"`
}

type AuxiliaryFunctionType1Attrs struct {
	BackgroundColour Colour `json:"background_colour"`
	FunctionType     uint8  `json:"function_type"` // 0 latching, 1 non-latching, 2 analogue
}

type AuxiliaryInputType1Attrs struct {
	BackgroundColour Colour `json:"background_colour"`
	FunctionType     uint8  `json:"function_type"`
	InputID          uint8  `json:"input_id"`
}

type AuxiliaryFunctionType2Attrs struct {
	BackgroundColour   Colour                `json:"background_colour"`
	FunctionAttributes AuxFunctionAttributes `json:"function_attributes"`
}

type AuxiliaryInputType2Attrs struct {
	BackgroundColour   Colour                `json:"background_colour"`
	FunctionAttributes AuxFunctionAttributes `json:"function_attributes"`
}

type AuxiliaryControlDesignatorType2Attrs struct {
	PointerType uint8 `json:"pointer_type"` // 0..3; 2 means the working set of this pool
}

type WindowMaskAttrs struct {
	Width            uint16 `json:"width"`
	Height           uint16 `json:"height"`
	BackgroundColour Colour `json:"background_colour"`
	WindowType       uint8  `json:"window_type"`
	Available        bool   `json:"available"`
	Transparent      bool   `json:"transparent,omitempty"`
}

type KeyGroupAttrs struct {
	Available   bool `json:"available"`
	Transparent bool `json:"transparent,omitempty"`
}

type GraphicsContextAttrs struct {
	ViewportWidth    uint16  `json:"viewport_width"`
	ViewportHeight   uint16  `json:"viewport_height"`
	ViewportX        int16   `json:"viewport_x"`
	ViewportY        int16   `json:"viewport_y"`
	CanvasWidth      uint16  `json:"canvas_width"`
	CanvasHeight     uint16  `json:"canvas_height"`
	ViewportZoom     float32 `json:"viewport_zoom"`
	CursorX          int16   `json:"cursor_x"`
	CursorY          int16   `json:"cursor_y"`
	ForegroundColour Colour  `json:"foreground_colour"`
	BackgroundColour Colour  `json:"background_colour"`
	Transparent      bool    `json:"transparent,omitempty"`
}

type OutputListAttrs struct {
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
	Value  uint8  `json:"value"`
}

func (*WorkingSetAttrs) Type() ObjectType                      { return WorkingSet }
func (*DataMaskAttrs) Type() ObjectType                        { return DataMask }
func (*AlarmMaskAttrs) Type() ObjectType                       { return AlarmMask }
func (*ContainerAttrs) Type() ObjectType                       { return Container }
func (*SoftKeyMaskAttrs) Type() ObjectType                     { return SoftKeyMask }
func (*KeyAttrs) Type() ObjectType                             { return Key }
func (*ButtonAttrs) Type() ObjectType                          { return Button }
func (*InputBooleanAttrs) Type() ObjectType                    { return InputBoolean }
func (*InputStringAttrs) Type() ObjectType                     { return InputString }
func (*InputNumberAttrs) Type() ObjectType                     { return InputNumber }
func (*InputListAttrs) Type() ObjectType                       { return InputList }
func (*OutputStringAttrs) Type() ObjectType                    { return OutputString }
func (*OutputNumberAttrs) Type() ObjectType                    { return OutputNumber }
func (*OutputLineAttrs) Type() ObjectType                      { return OutputLine }
func (*OutputRectangleAttrs) Type() ObjectType                 { return OutputRectangle }
func (*OutputEllipseAttrs) Type() ObjectType                   { return OutputEllipse }
func (*OutputPolygonAttrs) Type() ObjectType                   { return OutputPolygon }
func (*OutputMeterAttrs) Type() ObjectType                     { return OutputMeter }
func (*OutputLinearBarGraphAttrs) Type() ObjectType            { return OutputLinearBarGraph }
func (*OutputArchedBarGraphAttrs) Type() ObjectType            { return OutputArchedBarGraph }
func (*PictureGraphicAttrs) Type() ObjectType                  { return PictureGraphic }
func (*NumberVariableAttrs) Type() ObjectType                  { return NumberVariable }
func (*StringVariableAttrs) Type() ObjectType                  { return StringVariable }
func (*FontAttributesAttrs) Type() ObjectType                  { return FontAttributes }
func (*LineAttributesAttrs) Type() ObjectType                  { return LineAttributes }
func (*FillAttributesAttrs) Type() ObjectType                  { return FillAttributes }
func (*InputAttributesAttrs) Type() ObjectType                 { return InputAttributes }
func (*ObjectPointerAttrs) Type() ObjectType                   { return ObjectPointer }
func (*MacroAttrs) Type() ObjectType                           { return Macro }
func (*AuxiliaryFunctionType1Attrs) Type() ObjectType          { return AuxiliaryFunctionType1 }
func (*AuxiliaryInputType1Attrs) Type() ObjectType             { return AuxiliaryInputType1 }
func (*AuxiliaryFunctionType2Attrs) Type() ObjectType          { return AuxiliaryFunctionType2 }
func (*AuxiliaryInputType2Attrs) Type() ObjectType             { return AuxiliaryInputType2 }
func (*AuxiliaryControlDesignatorType2Attrs) Type() ObjectType { return AuxiliaryControlDesignatorType2 }
func (*WindowMaskAttrs) Type() ObjectType                      { return WindowMask }
func (*KeyGroupAttrs) Type() ObjectType                        { return KeyGroup }
func (*GraphicsContextAttrs) Type() ObjectType                 { return GraphicsContext }
func (*OutputListAttrs) Type() ObjectType                      { return OutputList }

func (a *WorkingSetAttrs) clone() Attributes {
	c := *a
	c.Languages = slices.Clone(a.Languages)
	return &c
}

func (a *OutputPolygonAttrs) clone() Attributes {
	c := *a
	c.Points = slices.Clone(a.Points)
	return &c
}

func (a *PictureGraphicAttrs) clone() Attributes {
	c := *a
	c.Data = slices.Clone(a.Data)
	return &c
}

func (a *MacroAttrs) clone() Attributes {
	c := *a
	c.Commands = slices.Clone(a.Commands)
	for i, cmd := range a.Commands {
		c.Commands[i] = MacroCommand{Code: cmd.Code, Params: slices.Clone(cmd.Params)}
	}
	return &c
}

func (a *DataMaskAttrs) clone() Attributes                        { c := *a; return &c }
func (a *AlarmMaskAttrs) clone() Attributes                       { c := *a; return &c }
func (a *ContainerAttrs) clone() Attributes                       { c := *a; return &c }
func (a *SoftKeyMaskAttrs) clone() Attributes                     { c := *a; return &c }
func (a *KeyAttrs) clone() Attributes                             { c := *a; return &c }
func (a *ButtonAttrs) clone() Attributes                          { c := *a; return &c }
func (a *InputBooleanAttrs) clone() Attributes                    { c := *a; return &c }
func (a *InputStringAttrs) clone() Attributes                     { c := *a; return &c }
func (a *InputNumberAttrs) clone() Attributes                     { c := *a; return &c }
func (a *InputListAttrs) clone() Attributes                       { c := *a; return &c }
func (a *OutputStringAttrs) clone() Attributes                    { c := *a; return &c }
func (a *OutputNumberAttrs) clone() Attributes                    { c := *a; return &c }
func (a *OutputLineAttrs) clone() Attributes                      { c := *a; return &c }
func (a *OutputRectangleAttrs) clone() Attributes                 { c := *a; return &c }
func (a *OutputEllipseAttrs) clone() Attributes                   { c := *a; return &c }
func (a *OutputMeterAttrs) clone() Attributes                     { c := *a; return &c }
func (a *OutputLinearBarGraphAttrs) clone() Attributes            { c := *a; return &c }
func (a *OutputArchedBarGraphAttrs) clone() Attributes            { c := *a; return &c }
func (a *NumberVariableAttrs) clone() Attributes                  { c := *a; return &c }
func (a *StringVariableAttrs) clone() Attributes                  { c := *a; return &c }
func (a *FontAttributesAttrs) clone() Attributes                  { c := *a; return &c }
func (a *LineAttributesAttrs) clone() Attributes                  { c := *a; return &c }
func (a *FillAttributesAttrs) clone() Attributes                  { c := *a; return &c }
func (a *InputAttributesAttrs) clone() Attributes                 { c := *a; return &c }
func (a *ObjectPointerAttrs) clone() Attributes                   { c := *a; return &c }
func (a *AuxiliaryFunctionType1Attrs) clone() Attributes          { c := *a; return &c }
func (a *AuxiliaryInputType1Attrs) clone() Attributes             { c := *a; return &c }
func (a *AuxiliaryFunctionType2Attrs) clone() Attributes          { c := *a; return &c }
func (a *AuxiliaryInputType2Attrs) clone() Attributes             { c := *a; return &c }
func (a *AuxiliaryControlDesignatorType2Attrs) clone() Attributes { c := *a; return &c }
func (a *WindowMaskAttrs) clone() Attributes                      { c := *a; return &c }
func (a *KeyGroupAttrs) clone() Attributes                        { c := *a; return &c }
func (a *GraphicsContextAttrs) clone() Attributes                 { c := *a; return &c }
func (a *OutputListAttrs) clone() Attributes                      { c := *a; return &c }
