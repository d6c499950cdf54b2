package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/ritzau/vt-designer/pkg/model"
)

// fontSizes are the non-proportional VT font cells, by font size code.
var fontSizes = [...][2]int{
	{6, 8}, {8, 8}, {8, 12}, {12, 16}, {16, 16}, {16, 24}, {24, 32}, {32, 32},
	{32, 48}, {48, 64}, {64, 64}, {64, 96}, {96, 128}, {128, 128}, {128, 192},
}

// fontCell returns the character cell of a font. Proportional fonts (VT4+)
// store their height in the size field.
func fontCell(v model.VtVersion, font *model.FontAttributesAttrs) (w, h int, proportional bool) {
	if v >= model.Version4 && font.FontStyle.Proportional {
		height := int(font.FontSize)
		return max(1, height*3/4), height, true
	}
	if int(font.FontSize) < len(fontSizes) {
		cell := fontSizes[font.FontSize]
		return cell[0], cell[1], false
	}
	cell := fontSizes[len(fontSizes)-1]
	return cell[0], cell[1], false
}

// stringValue is the shown string: the bound string variable's, if any.
func (r *renderer) stringValue(obj model.Object, own string) string {
	if variable, ok := r.view.Lookup(obj.Ref(model.RoleVariable)); ok {
		if sv, isString := variable.Attrs.(*model.StringVariableAttrs); isString {
			return sv.Value
		}
	}
	return own
}

// numberValue is the raw shown value: the bound number variable's, if any.
func (r *renderer) numberValue(obj model.Object, own uint32) uint32 {
	if variable, ok := r.view.Lookup(obj.Ref(model.RoleVariable)); ok {
		if nv, isNumber := variable.Attrs.(*model.NumberVariableAttrs); isNumber {
			return nv.Value
		}
	}
	return own
}

// layoutLines splits text on any VT line break and trims spaces the way the
// horizontal justification asks for.
func layoutLines(value string, horizontal uint8, autoWrap bool) []string {
	value = strings.NewReplacer("\r\n", "\n", "\n\r", "\n", "\r", "\n").Replace(value)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		switch horizontal {
		case 0:
			if autoWrap && i > 0 {
				lines[i] = strings.TrimLeft(line, " ")
			}
		case 1:
			lines[i] = strings.Trim(line, " ")
		case 2:
			lines[i] = strings.TrimRight(line, " ")
		}
	}
	return lines
}

func (r *renderer) text(obj model.Object, w, h int, value string, bg model.Colour, opts model.TextOptions, j model.Justification) []Primitive {
	font, ok := r.font(obj)
	if !ok {
		return []Primitive{r.missing(0, 0, obj.Ref(model.RoleFont), "font attributes")}
	}

	t := r.styledText(font, w, h, j)
	t.Lines = layoutLines(r.stringValue(obj, value), j.Horizontal, opts.AutoWrap)
	t.Wrap = opts.AutoWrap
	if !opts.Transparent {
		t.Background = ptr(r.colour(bg))
	}
	return []Primitive{t}
}

func (r *renderer) styledText(font *model.FontAttributesAttrs, w, h int, j model.Justification) Text {
	fw, fh, proportional := fontCell(r.view.Version(), font)
	return Text{
		Width:        w,
		Height:       h,
		Colour:       r.colour(font.FontColour),
		FontWidth:    fw,
		FontHeight:   fh,
		Proportional: proportional,
		Bold:         font.FontStyle.Bold,
		Italic:       font.FontStyle.Italic,
		Underlined:   font.FontStyle.Underlined,
		CrossedOut:   font.FontStyle.CrossedOut,
		Horizontal:   j.Horizontal,
		Vertical:     j.Vertical,
	}
}

// numberText formats a raw number value as a VT shows it: (raw + offset) * scale
// with the configured decimals.
func numberText(raw uint32, offset int32, scale float32, decimals uint8, exponential bool, opts model.NumberOptions, width int) string {
	v := (float64(raw) + float64(offset)) * float64(scale)
	if opts.DisplayZeroAsBlank && v == 0 {
		return ""
	}
	if opts.Truncate {
		p := math.Pow10(int(decimals))
		v = math.Trunc(v*p) / p
	}

	format := byte('f')
	if exponential {
		format = 'e'
	}
	s := strconv.FormatFloat(v, format, int(decimals), 64)

	if opts.DisplayLeadingZeros && len(s) < width {
		sign := ""
		if strings.HasPrefix(s, "-") {
			sign, s = "-", s[1:]
		}
		s = sign + strings.Repeat("0", width-len(s)-len(sign)) + s
	}
	return s
}

func (r *renderer) number(obj model.Object, w, h int, raw uint32, offset int32, scale float32, decimals uint8,
	exponential bool, bg model.Colour, opts model.NumberOptions, j model.Justification) []Primitive {
	font, ok := r.font(obj)
	if !ok {
		return []Primitive{r.missing(0, 0, obj.Ref(model.RoleFont), "font attributes")}
	}

	t := r.styledText(font, w, h, j)
	chars := 0
	if t.FontWidth > 0 {
		chars = w / t.FontWidth
	}
	t.Lines = []string{numberText(raw, offset, scale, decimals, exponential, opts, chars)}
	if !opts.Transparent {
		t.Background = ptr(r.colour(bg))
	}
	return []Primitive{t}
}
