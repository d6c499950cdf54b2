package configure

import (
	"fmt"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/relations"
)

// Largest values of the enumerated attributes.
const (
	maxAlignment     = 2  // left/top, middle, right/bottom
	maxPriority      = 2  // high, medium, low
	maxAcoustic      = 3  // highest .. none
	maxFontSize      = 14 // 128x192
	maxFillType      = 3  // pattern
	maxEllipseType   = 3  // closed section
	maxPolygonType   = 3  // open
	maxPictureFormat = 2  // 8-bit
	maxAngle         = 180
	maxPointerType   = 3
	maxAuxType1      = 2
	maxAuxType2      = 15
	minPolygonPoints = 3
)

// fields binds the settable attributes of a variant. The switch must cover
// every editable variant.
func fields(attrs model.Attributes) []field {
	switch a := attrs.(type) {
	case *model.WorkingSetAttrs:
		return []field{
			colour("background_colour", &a.BackgroundColour),
			flag("selectable", &a.Selectable),
			structured("languages", &a.Languages),
		}
	case *model.DataMaskAttrs:
		return []field{colour("background_colour", &a.BackgroundColour)}
	case *model.AlarmMaskAttrs:
		return []field{
			colour("background_colour", &a.BackgroundColour),
			enum("priority", &a.Priority, maxPriority),
			enum("acoustic_signal", &a.AcousticSignal, maxAcoustic),
		}
	case *model.ContainerAttrs:
		return []field{u16("width", &a.Width), u16("height", &a.Height), flag("hidden", &a.Hidden)}
	case *model.SoftKeyMaskAttrs:
		return []field{colour("background_colour", &a.BackgroundColour)}
	case *model.KeyAttrs:
		return []field{colour("background_colour", &a.BackgroundColour), u8("key_code", &a.KeyCode)}
	case *model.ButtonAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("background_colour", &a.BackgroundColour),
			colour("border_colour", &a.BorderColour),
			u8("key_code", &a.KeyCode),
			structured("options", &a.Options),
		}
	case *model.InputBooleanAttrs:
		return []field{
			colour("background_colour", &a.BackgroundColour),
			u16("width", &a.Width),
			flag("value", &a.Value),
			flag("enabled", &a.Enabled),
		}
	case *model.InputStringAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("background_colour", &a.BackgroundColour),
			structured("options", &a.Options),
			structured("justification", &a.Justification),
			text("value", &a.Value),
			flag("enabled", &a.Enabled),
		}
	case *model.InputNumberAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("background_colour", &a.BackgroundColour),
			structured("options", &a.Options),
			u32("value", &a.Value),
			u32("min_value", &a.MinValue),
			u32("max_value", &a.MaxValue),
			i32("offset", &a.Offset),
			f32("scale", &a.Scale),
			u8("nr_of_decimals", &a.NrOfDecimals),
			flag("exponential", &a.Exponential),
			structured("justification", &a.Justification),
			flag("enabled", &a.Enabled),
			flag("real_time_editing", &a.RealTimeEditing),
		}
	case *model.InputListAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			u8("value", &a.Value),
			flag("enabled", &a.Enabled),
			flag("real_time_editing", &a.RealTimeEditing),
		}
	case *model.OutputStringAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("background_colour", &a.BackgroundColour),
			structured("options", &a.Options),
			structured("justification", &a.Justification),
			text("value", &a.Value),
		}
	case *model.OutputNumberAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("background_colour", &a.BackgroundColour),
			structured("options", &a.Options),
			u32("value", &a.Value),
			i32("offset", &a.Offset),
			f32("scale", &a.Scale),
			u8("nr_of_decimals", &a.NrOfDecimals),
			flag("exponential", &a.Exponential),
			structured("justification", &a.Justification),
		}
	case *model.OutputLineAttrs:
		return []field{u16("width", &a.Width), u16("height", &a.Height), enum("line_direction", &a.LineDirection, 1)}
	case *model.OutputRectangleAttrs:
		return []field{u16("width", &a.Width), u16("height", &a.Height), enum("line_suppression", &a.LineSuppression, 0x0F)}
	case *model.OutputEllipseAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			enum("ellipse_type", &a.EllipseType, maxEllipseType),
			enum("start_angle", &a.StartAngle, maxAngle),
			enum("end_angle", &a.EndAngle, maxAngle),
		}
	case *model.OutputPolygonAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			enum("polygon_type", &a.PolygonType, maxPolygonType),
			structured("points", &a.Points),
		}
	case *model.OutputMeterAttrs:
		return []field{
			u16("width", &a.Width),
			colour("needle_colour", &a.NeedleColour),
			colour("border_colour", &a.BorderColour),
			colour("arc_and_tick_colour", &a.ArcAndTickColour),
			flag("draw_arc", &a.DrawArc),
			flag("draw_border", &a.DrawBorder),
			flag("draw_ticks", &a.DrawTicks),
			flag("deflection_clockwise", &a.DeflectionClockwise),
			u8("nr_of_ticks", &a.NrOfTicks),
			enum("start_angle", &a.StartAngle, maxAngle),
			enum("end_angle", &a.EndAngle, maxAngle),
			u16("min_value", &a.MinValue),
			u16("max_value", &a.MaxValue),
			u16("value", &a.Value),
		}
	case *model.OutputLinearBarGraphAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("colour", &a.Colour),
			colour("target_line_colour", &a.TargetLineColour),
			flag("draw_border", &a.DrawBorder),
			flag("draw_target_line", &a.DrawTargetLine),
			flag("draw_ticks", &a.DrawTicks),
			flag("line_only", &a.LineOnly),
			flag("horizontal", &a.Horizontal),
			flag("grow_negative", &a.GrowNegative),
			u8("nr_of_ticks", &a.NrOfTicks),
			u16("min_value", &a.MinValue),
			u16("max_value", &a.MaxValue),
			u16("value", &a.Value),
			u16("target_value", &a.TargetValue),
		}
	case *model.OutputArchedBarGraphAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("colour", &a.Colour),
			colour("target_line_colour", &a.TargetLineColour),
			flag("draw_border", &a.DrawBorder),
			flag("draw_target_line", &a.DrawTargetLine),
			flag("line_only", &a.LineOnly),
			flag("deflection_clockwise", &a.DeflectionClockwise),
			enum("start_angle", &a.StartAngle, maxAngle),
			enum("end_angle", &a.EndAngle, maxAngle),
			u16("bar_graph_width", &a.BarGraphWidth),
			u16("min_value", &a.MinValue),
			u16("max_value", &a.MaxValue),
			u16("value", &a.Value),
			u16("target_value", &a.TargetValue),
		}
	case *model.PictureGraphicAttrs:
		return []field{
			u16("width", &a.Width),
			u16("actual_width", &a.ActualWidth),
			u16("actual_height", &a.ActualHeight),
			enum("format", &a.Format, maxPictureFormat),
			flag("transparent", &a.Transparent),
			flag("flashing", &a.Flashing),
			flag("run_length_encoded", &a.RunLengthEncoded),
			colour("transparency_colour", &a.TransparencyColour),
			structured("data", &a.Data),
		}
	case *model.NumberVariableAttrs:
		return []field{u32("value", &a.Value)}
	case *model.StringVariableAttrs:
		return []field{text("value", &a.Value)}
	case *model.FontAttributesAttrs:
		return []field{
			colour("font_colour", &a.FontColour),
			enum("font_size", &a.FontSize, maxFontSize),
			u8("font_type", &a.FontType),
			structured("font_style", &a.FontStyle),
		}
	case *model.LineAttributesAttrs:
		return []field{colour("line_colour", &a.LineColour), u8("line_width", &a.LineWidth), u16("line_art", &a.LineArt)}
	case *model.FillAttributesAttrs:
		return []field{enum("fill_type", &a.FillType, maxFillType), colour("fill_colour", &a.FillColour)}
	case *model.InputAttributesAttrs:
		return []field{enum("validation_type", &a.ValidationType, 1), text("validation_string", &a.ValidationString)}
	case *model.ObjectPointerAttrs:
		// The pointer's only attribute is its target, edited as a reference
		return []field{}
	case *model.MacroAttrs:
		return []field{structured("commands", &a.Commands)}
	case *model.AuxiliaryFunctionType1Attrs:
		return []field{colour("background_colour", &a.BackgroundColour), enum("function_type", &a.FunctionType, maxAuxType1)}
	case *model.AuxiliaryInputType1Attrs:
		return []field{
			colour("background_colour", &a.BackgroundColour),
			enum("function_type", &a.FunctionType, maxAuxType1),
			u8("input_id", &a.InputID),
		}
	case *model.AuxiliaryFunctionType2Attrs:
		return []field{colour("background_colour", &a.BackgroundColour), structured("function_attributes", &a.FunctionAttributes)}
	case *model.AuxiliaryInputType2Attrs:
		return []field{colour("background_colour", &a.BackgroundColour), structured("function_attributes", &a.FunctionAttributes)}
	case *model.AuxiliaryControlDesignatorType2Attrs:
		return []field{enum("pointer_type", &a.PointerType, maxPointerType)}
	case *model.WindowMaskAttrs:
		return []field{
			u16("width", &a.Width),
			u16("height", &a.Height),
			colour("background_colour", &a.BackgroundColour),
			u8("window_type", &a.WindowType),
			flag("available", &a.Available),
			flag("transparent", &a.Transparent),
		}
	case *model.KeyGroupAttrs:
		return []field{flag("available", &a.Available), flag("transparent", &a.Transparent)}
	case *model.GraphicsContextAttrs:
		return []field{
			u16("viewport_width", &a.ViewportWidth),
			u16("viewport_height", &a.ViewportHeight),
			i16("viewport_x", &a.ViewportX),
			i16("viewport_y", &a.ViewportY),
			u16("canvas_width", &a.CanvasWidth),
			u16("canvas_height", &a.CanvasHeight),
			f32("viewport_zoom", &a.ViewportZoom),
			i16("cursor_x", &a.CursorX),
			i16("cursor_y", &a.CursorY),
			colour("foreground_colour", &a.ForegroundColour),
			colour("background_colour", &a.BackgroundColour),
			flag("transparent", &a.Transparent),
		}
	case *model.OutputListAttrs:
		return []field{u16("width", &a.Width), u16("height", &a.Height), u8("value", &a.Value)}
	}
	return nil
}

// check validates the constraints that span attributes, once all changes of
// an Apply call are in.
func check(view graph.View, obj *model.Object) error {
	id := obj.ID
	bound := !obj.Ref(model.RoleVariable).IsNull()

	switch a := obj.Attrs.(type) {
	case *model.WorkingSetAttrs:
		for _, lang := range a.Languages {
			if len(lang) != 2 {
				return graph.Invalid(id, "languages", "language code %q is not two letters", lang)
			}
		}
	case *model.InputStringAttrs:
		if err := checkJustification(id, a.Justification); err != nil {
			return err
		}
	case *model.OutputStringAttrs:
		if err := checkJustification(id, a.Justification); err != nil {
			return err
		}
	case *model.OutputNumberAttrs:
		if err := checkJustification(id, a.Justification); err != nil {
			return err
		}
	case *model.InputNumberAttrs:
		if err := checkJustification(id, a.Justification); err != nil {
			return err
		}
		if err := checkRange(id, uint64(a.MinValue), uint64(a.MaxValue), uint64(a.Value), bound); err != nil {
			return err
		}
		if a.Scale == 0 {
			return graph.Invalid(id, "scale", "scale cannot be zero")
		}
	case *model.OutputMeterAttrs:
		return checkRange(id, uint64(a.MinValue), uint64(a.MaxValue), uint64(a.Value), bound)
	case *model.OutputLinearBarGraphAttrs:
		if err := checkRange(id, uint64(a.MinValue), uint64(a.MaxValue), uint64(a.Value), bound); err != nil {
			return err
		}
		return checkTarget(id, obj, uint64(a.MinValue), uint64(a.MaxValue), uint64(a.TargetValue))
	case *model.OutputArchedBarGraphAttrs:
		if err := checkRange(id, uint64(a.MinValue), uint64(a.MaxValue), uint64(a.Value), bound); err != nil {
			return err
		}
		return checkTarget(id, obj, uint64(a.MinValue), uint64(a.MaxValue), uint64(a.TargetValue))
	case *model.OutputPolygonAttrs:
		if len(a.Points) < minPolygonPoints {
			return graph.Invalid(id, "points", "a polygon needs at least %d points, has %d", minPolygonPoints, len(a.Points))
		}
		for i, p := range a.Points {
			if p.X > a.Width || p.Y > a.Height {
				return graph.Invalid(id, "points", "point %d (%d,%d) lies outside %dx%d", i, p.X, p.Y, a.Width, a.Height)
			}
		}
	case *model.PictureGraphicAttrs:
		if a.ActualWidth == 0 || a.ActualHeight == 0 {
			return graph.Invalid(id, "actual_width", "picture must be at least 1x1")
		}
	case *model.FontAttributesAttrs:
		if a.FontType > 7 && a.FontType != 0xFF {
			return graph.Invalid(id, "font_type", "font type %d is reserved", a.FontType)
		}
	case *model.MacroAttrs:
		for i, c := range a.Commands {
			info, ok := relations.LookupMacroCommand(c.Code)
			if !ok {
				return graph.Invalid(id, "commands", "command %d has unknown code 0x%02X", i, c.Code)
			}
			if view.Version() < info.MinVersion {
				return graph.Invalid(id, "commands", "%s needs %s, pool targets %s", info.Name, info.MinVersion, view.Version())
			}
		}
	case *model.AuxiliaryFunctionType2Attrs:
		return checkAuxFunction(id, a.FunctionAttributes)
	case *model.AuxiliaryInputType2Attrs:
		return checkAuxFunction(id, a.FunctionAttributes)
	case *model.AuxiliaryControlDesignatorType2Attrs:
		// Type 2 designates this pool's own working set, never a listed object
		if a.PointerType == 2 {
			*obj = obj.WithRef(model.RoleAuxDesignator, objectid.Null)
		}
	}
	return nil
}

func checkJustification(id objectid.ObjectID, j model.Justification) error {
	if j.Horizontal > maxAlignment || j.Vertical > maxAlignment {
		return graph.Invalid(id, "justification", "alignment %d/%d is outside 0..%d", j.Horizontal, j.Vertical, maxAlignment)
	}
	return nil
}

// checkRange requires min <= max and, unless a variable supplies the value,
// the value itself within range.
func checkRange(id objectid.ObjectID, minValue, maxValue, value uint64, bound bool) error {
	if minValue > maxValue {
		return graph.Invalid(id, "min_value", "minimum %d is above maximum %d", minValue, maxValue)
	}
	if !bound && (value < minValue || value > maxValue) {
		return graph.Invalid(id, "value", "value %d is outside %d..%d", value, minValue, maxValue)
	}
	return nil
}

func checkTarget(id objectid.ObjectID, obj *model.Object, minValue, maxValue, target uint64) error {
	if !obj.Ref(model.RoleTargetVariable).IsNull() {
		return nil
	}
	if target < minValue || target > maxValue {
		return graph.Invalid(id, "target_value", "target %d is outside %d..%d", target, minValue, maxValue)
	}
	return nil
}

func checkAuxFunction(id objectid.ObjectID, f model.AuxFunctionAttributes) error {
	if f.FunctionType > maxAuxType2 {
		return graph.Invalid(id, "function_attributes", "function type %d is outside 0..%d", f.FunctionType, maxAuxType2)
	}
	return nil
}

// Describe returns "attr=value" pairs for logging an edit.
func Describe(changes []Change) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		out = append(out, fmt.Sprintf("%s=%v", c.Attr, c.Value))
	}
	return out
}
